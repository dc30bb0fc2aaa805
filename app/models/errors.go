package models

import "errors"

var (
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrNoPlanLoaded     = errors.New("payment plan not loaded")
)
