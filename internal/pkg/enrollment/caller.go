package enrollment

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/app/repository"
)

var (
	// ErrMissingSurveyCode is returned for an anonymous request without a code.
	ErrMissingSurveyCode = errors.New("survey code required")
	// ErrUnknownSurveyCode is returned when no profile owns the code.
	ErrUnknownSurveyCode = errors.New("unknown survey code")
)

// Caller is who creates a payer: either an authenticated owner or an
// anonymous enrollee presenting a survey code. Exactly one of the two
// variants is set.
type Caller struct {
	profileID  uint
	surveyCode string
	anonymous  bool
}

// Owner is an authenticated caller acting for their own profile.
func Owner(profileID uint) Caller {
	return Caller{profileID: profileID}
}

// Enrollee is an anonymous caller identified only by a survey code.
func Enrollee(surveyCode string) Caller {
	return Caller{surveyCode: strings.TrimSpace(surveyCode), anonymous: true}
}

func (c Caller) IsAnonymous() bool {
	return c.anonymous
}

// ActingProfile resolves the caller to the profile a new payer is attributed
// to. Owners act for their own profile; enrollees for the profile owning the
// survey code.
func ActingProfile(profiles repository.ProfileRepository, c Caller) (*models.Profile, error) {
	if !c.anonymous {
		return profiles.GetByID(c.profileID)
	}
	if c.surveyCode == "" {
		return nil, ErrMissingSurveyCode
	}
	profile, err := profiles.GetBySurveyCode(c.surveyCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSurveyCode
		}
		return nil, err
	}
	return profile, nil
}
