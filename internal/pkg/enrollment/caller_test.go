package enrollment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/app/repository"
	"github.com/ManuelReschke/PayPlan/internal/pkg/database"
)

func newProfiles(t *testing.T) (repository.ProfileRepository, *models.Profile) {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	repos := repository.NewRepositories(db)

	account := &models.Account{Username: "alice", Password: "x"}
	require.NoError(t, repos.Account.Create(account))
	profile := &models.Profile{AccountID: account.ID, SurveyCode: "ABC1234567"}
	require.NoError(t, repos.Profile.Create(profile))
	return repos.Profile, profile
}

func TestActingProfileOwner(t *testing.T) {
	profiles, alice := newProfiles(t)

	got, err := ActingProfile(profiles, Owner(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.False(t, Owner(alice.ID).IsAnonymous())
}

func TestActingProfileEnrolleeWithValidCode(t *testing.T) {
	profiles, alice := newProfiles(t)

	got, err := ActingProfile(profiles, Enrollee(" ABC1234567 "))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.True(t, Enrollee("x").IsAnonymous())
}

func TestActingProfileEnrolleeWithUnknownCode(t *testing.T) {
	profiles, _ := newProfiles(t)

	_, err := ActingProfile(profiles, Enrollee("ZZZZZZZZZZ"))
	assert.ErrorIs(t, err, ErrUnknownSurveyCode)
}

func TestActingProfileEnrolleeWithoutCode(t *testing.T) {
	profiles, _ := newProfiles(t)

	_, err := ActingProfile(profiles, Enrollee(""))
	assert.ErrorIs(t, err, ErrMissingSurveyCode)
}
