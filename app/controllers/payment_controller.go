package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

func HandleCreatePayment(c *fiber.Ctx) error {
	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}

	payment := &models.Payment{}
	if err := viewmodel.ApplyPayment(payload, payment, false); err != nil {
		return respondError(c, err)
	}
	if err := checkPaymentPlan(payment, callerProfileID(c)); err != nil {
		return respondError(c, err)
	}
	if err := repos().Payment.Create(payment); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewmodel.NewPayment(payment))
}

func HandleGetPayment(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	payment, err := repos().Payment.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewPayment(payment))
}

// HandleUpdatePayment serves PUT (full) and PATCH (partial) updates.
func HandleUpdatePayment(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	profileID := callerProfileID(c)
	r := repos()
	payment, err := r.Payment.GetForProfile(id, profileID)
	if err != nil {
		return respondError(c, err)
	}

	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}
	if err := viewmodel.ApplyPayment(payload, payment, isPartial(c)); err != nil {
		return respondError(c, err)
	}
	if err := checkPaymentPlan(payment, profileID); err != nil {
		return respondError(c, err)
	}
	if err := r.Payment.Update(payment); err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewPayment(payment))
}

func HandleDeletePayment(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	r := repos()
	payment, err := r.Payment.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := r.Payment.Delete(payment.ID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// checkPaymentPlan rejects a plan reference the profile does not own. A
// payment without a plan is allowed.
func checkPaymentPlan(payment *models.Payment, profileID uint) error {
	if payment.PaymentPlanID == nil {
		return nil
	}
	_, err := repos().PlanOption.GetForProfile(*payment.PaymentPlanID, profileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errs := viewmodel.FieldErrors{}
		errs.Add("payment_plan", invalidReference(*payment.PaymentPlanID))
		return errs.Err()
	}
	return err
}
