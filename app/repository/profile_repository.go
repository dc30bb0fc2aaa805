package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.Profile) error {
	return r.db.Omit("Account", "PaymentPlans").Create(profile).Error
}

func (r *profileRepository) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByAccountID(accountID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetBySurveyCode resolves an enrollment code to the profile that owns it.
func (r *profileRepository) GetBySurveyCode(code string) (*models.Profile, error) {
	if code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var profile models.Profile
	if err := r.db.Where("survey_code = ?", code).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetWithPlans loads a profile with its plans and their payments, ordered by
// creation.
func (r *profileRepository) GetWithPlans(id uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.
		Preload("PaymentPlans", func(db *gorm.DB) *gorm.DB { return db.Order("plan_options.id ASC") }).
		Preload("PaymentPlans.Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.id ASC") }).
		First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) SurveyCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("survey_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) CountByAccountID(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
