package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/repository"
	"github.com/ManuelReschke/PayPlan/internal/pkg/enrollment"
	"github.com/ManuelReschke/PayPlan/internal/pkg/usercontext"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

func factory() *repository.Factory {
	return repository.GetGlobalFactory()
}

func repos() *repository.Repositories {
	return factory().GetRepositories()
}

// parseRequestPayload reads a JSON object body, or form values for form and
// multipart requests.
func parseRequestPayload(c *fiber.Ctx) (viewmodel.Payload, error) {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		values := map[string]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = string(v)
		})
		return viewmodel.PayloadFromForm(values), nil
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		values := map[string]string{}
		for k, v := range form.Value {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}
		return viewmodel.PayloadFromForm(values), nil
	default:
		return viewmodel.ParsePayload(c.Body())
	}
}

// idParam reads the numeric :id route parameter.
func idParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// isPartial reports whether the update is a PATCH.
func isPartial(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodPatch
}

// callerProfileID returns the authenticated caller's profile.
func callerProfileID(c *fiber.Ctx) uint {
	return usercontext.GetProfileID(c)
}

func respondNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Not found."})
}

func respondMalformed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Malformed request body: " + err.Error()})
}

func respondFieldErrors(c *fiber.Ctx, fields viewmodel.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "validation_failed",
		"message": "Invalid input.",
		"fields":  fields,
	})
}

// respondError maps service and repository errors to HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	if v, ok := viewmodel.AsValidationError(err); ok {
		return respondFieldErrors(c, v.Fields)
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, enrollment.ErrUnknownSurveyCode),
		errors.Is(err, enrollment.ErrMissingSurveyCode):
		return respondNotFound(c)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "A record with these values already exists."})
	}
	fiberlog.Errorf("[API] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal server error"})
}

// invalidReference is the field error for a reference outside the caller's
// scope, worded like a missing record so foreign ids are not disclosed.
func invalidReference(id uint) string {
	return "Invalid pk \"" + strconv.FormatUint(uint64(id), 10) + "\" - object does not exist."
}
