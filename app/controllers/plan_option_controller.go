package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

// HandleCreatePlanOption creates a plan owned by the caller. Any owner given
// in the payload is ignored.
func HandleCreatePlanOption(c *fiber.Ctx) error {
	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}

	plan := &models.PlanOption{ProfileID: callerProfileID(c)}
	if err := viewmodel.ApplyPlanOption(payload, plan, false); err != nil {
		return respondError(c, err)
	}
	if err := repos().PlanOption.Create(plan); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewmodel.NewPlanOption(plan))
}

func HandleGetPlanOption(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	plan, err := repos().PlanOption.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewPlanOption(plan))
}

// HandleUpdatePlanOption serves PUT (full) and PATCH (partial) updates.
func HandleUpdatePlanOption(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	r := repos()
	plan, err := r.PlanOption.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}

	payload, err := parseRequestPayload(c)
	if err != nil {
		return respondMalformed(c, err)
	}
	if err := viewmodel.ApplyPlanOption(payload, plan, isPartial(c)); err != nil {
		return respondError(c, err)
	}
	if err := r.PlanOption.Update(plan); err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewmodel.NewPlanOption(plan))
}

// HandleDeletePlanOption deletes the plan with its payments and payers.
func HandleDeletePlanOption(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondNotFound(c)
	}
	r := repos()
	plan, err := r.PlanOption.GetForProfile(id, callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := r.PlanOption.Delete(plan.ID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
