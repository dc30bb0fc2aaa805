package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Account is the login identity of an organizer. Every account owns exactly
// one Profile, created together with it by the accounts service.
type Account struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;type:varchar(150);not null" json:"username" validate:"required,min=3,max=150"`
	Email       string     `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email,max=200"`
	Password    string     `gorm:"type:text;not null" json:"-" validate:"required"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `gorm:"default:null" json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Account) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// NewAccount builds an active account with a hashed password. It does not
// persist anything.
func NewAccount(username, email, password string) (*Account, error) {
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &Account{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: pw,
		IsActive: true,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the stored password
func (a *Account) CheckPassword(password string) bool {
	return CheckPasswordHash(password, a.Password)
}

// SetPassword hashes and sets a new password for the account
func (a *Account) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return nil
}

// TouchLogin records a successful login.
func (a *Account) TouchLogin() {
	now := time.Now()
	a.LastLoginAt = &now
}
