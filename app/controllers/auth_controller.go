package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PayPlan/internal/pkg/accounts"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

// HandleObtainToken exchanges username and password for the account's token.
func HandleObtainToken(c *fiber.Ctx) error {
	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}

	errs := viewmodel.FieldErrors{}
	username, _ := payload.String("username", true, false, errs)
	password, _ := payload.Secret("password", errs)
	if len(errs) > 0 {
		return respondFieldErrors(c, errs)
	}

	svc := accounts.NewService(factory().DB())
	key, err := svc.Authenticate(c.UserContext(), username, password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) || errors.Is(err, accounts.ErrAccountInactive) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid_credentials",
				"message": "Unable to log in with provided credentials.",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"token": key})
}
