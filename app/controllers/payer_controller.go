package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/internal/pkg/enrollment"
	"github.com/ManuelReschke/PayPlan/internal/pkg/usercontext"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

const msgVenmoTaken = "payer with this venmo username already exists."

// payerCaller picks the caller variant for payer creation. Anonymous callers
// are identified by the survey_code in the payload.
func payerCaller(c *fiber.Ctx, payload viewmodel.Payload) enrollment.Caller {
	if usercontext.IsLoggedIn(c) {
		return enrollment.Owner(callerProfileID(c))
	}
	code, _ := payload.String("survey_code", false, true, viewmodel.FieldErrors{})
	return enrollment.Enrollee(code)
}

// HandleCreatePayer enrolls a payer for the caller's profile, or for the
// profile owning the survey code when the caller is anonymous.
func HandleCreatePayer(c *fiber.Ctx) error {
	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}

	r := repos()
	profile, err := enrollment.ActingProfile(r.Profile, payerCaller(c, payload))
	if err != nil {
		return respondError(c, err)
	}

	payer := &models.Payer{}
	if err := viewmodel.ApplyPayer(payload, payer, false); err != nil {
		return respondError(c, err)
	}
	if err := checkPayer(payer, profile.ID); err != nil {
		return respondError(c, err)
	}
	if err := r.Payer.Create(payer); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewmodel.NewPayer(payer))
}

func HandleGetPayer(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	payer, err := repos().Payer.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewPayer(payer))
}

// HandleUpdatePayer serves PUT (full) and PATCH (partial) updates.
func HandleUpdatePayer(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	profileID := callerProfileID(c)
	r := repos()
	payer, err := r.Payer.GetForProfile(id, profileID)
	if err != nil {
		return respondError(c, err)
	}

	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}
	if err := viewmodel.ApplyPayer(payload, payer, isPartial(c)); err != nil {
		return respondError(c, err)
	}
	if err := checkPayer(payer, profileID); err != nil {
		return respondError(c, err)
	}
	if err := r.Payer.Update(payer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewPayer(payer))
}

// HandleDeletePayer deletes the payer with its transactions.
func HandleDeletePayer(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	r := repos()
	payer, err := r.Payer.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := r.Payer.Delete(payer.ID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// checkPayer verifies the plan belongs to the acting profile and the venmo
// username is free.
func checkPayer(payer *models.Payer, profileID uint) error {
	r := repos()
	errs := viewmodel.FieldErrors{}

	plan, err := r.PlanOption.GetForProfile(payer.PaymentPlanID, profileID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		errs.Add("payment_plan", invalidReference(payer.PaymentPlanID))
	case err != nil:
		return err
	default:
		payer.PaymentPlan = plan
	}

	if payer.VenmoUsername != nil {
		taken, err := r.Payer.VenmoUsernameTaken(*payer.VenmoUsername, payer.ID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("venmo_username", msgVenmoTaken)
		}
	}
	return errs.Err()
}
