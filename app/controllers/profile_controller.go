package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
	"github.com/ManuelReschke/PayPlan/internal/pkg/viewmodel"
)

const qrCodeSize = 256

var surveyBaseURL string

// InitializeProfileController sets the public survey page the enrollment QR
// code links to.
func InitializeProfileController(cfg *config.Config) {
	surveyBaseURL = cfg.SurveyBaseURL
}

// HandleGetProfile returns the caller's profile with plans, payments, payers
// and transactions nested.
func HandleGetProfile(c *fiber.Ctx) error {
	r := repos()
	profile, err := r.Profile.GetWithPlans(callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	payers, err := r.Payer.ListByProfile(profile.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(viewmodel.NewProfile(profile, payers))
}

// HandleGetSurveyQRCode renders the caller's enrollment link as a PNG QR code
// for sharing with payers.
func HandleGetSurveyQRCode(c *fiber.Ctx) error {
	profile, err := repos().Profile.GetByID(callerProfileID(c))
	if err != nil {
		return respondError(c, err)
	}

	png, err := qrcode.Encode(surveyLink(surveyBaseURL, profile.SurveyCode), qrcode.Medium, qrCodeSize)
	if err != nil {
		fiberlog.Errorf("[Profile] failed to render QR code for profile %d: %v", profile.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to render QR code"})
	}

	c.Type("png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	return c.Send(png)
}

// surveyLink appends the survey code to the public survey page. Without a
// configured page the bare code is encoded.
func surveyLink(baseURL, code string) string {
	if baseURL == "" {
		return code
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return code
	}
	q := u.Query()
	q.Set("survey_code", code)
	u.RawQuery = q.Encode()
	return u.String()
}
