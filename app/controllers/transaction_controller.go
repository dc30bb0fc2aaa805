package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

func HandleCreateTransaction(c *fiber.Ctx) error {
	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}

	transaction := &models.Transaction{}
	if err := viewmodel.ApplyTransaction(payload, transaction, false); err != nil {
		return respondError(c, err)
	}
	if err := checkTransactionPayer(transaction, callerProfileID(c)); err != nil {
		return respondError(c, err)
	}
	if err := repos().Transaction.Create(transaction); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewmodel.NewTransaction(transaction))
}

func HandleGetTransaction(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	transaction, err := repos().Transaction.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewTransaction(transaction))
}

// HandleUpdateTransaction serves PUT (full) and PATCH (partial) updates.
func HandleUpdateTransaction(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	profileID := callerProfileID(c)
	r := repos()
	transaction, err := r.Transaction.GetForProfile(id, profileID)
	if err != nil {
		return respondError(c, err)
	}

	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}
	if err := viewmodel.ApplyTransaction(payload, transaction, isPartial(c)); err != nil {
		return respondError(c, err)
	}
	if err := checkTransactionPayer(transaction, profileID); err != nil {
		return respondError(c, err)
	}
	if err := r.Transaction.Update(transaction); err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewTransaction(transaction))
}

func HandleDeleteTransaction(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	r := repos()
	transaction, err := r.Transaction.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := r.Transaction.Delete(transaction.ID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func checkTransactionPayer(transaction *models.Transaction, profileID uint) error {
	_, err := repos().Payer.GetForProfile(transaction.PayerID, profileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errs := viewmodel.FieldErrors{}
		errs.Add("payer", invalidReference(transaction.PayerID))
		return errs.Err()
	}
	return err
}
