package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type planOptionRepository struct {
	db *gorm.DB
}

// NewPlanOptionRepository creates a new plan option repository instance
func NewPlanOptionRepository(db *gorm.DB) PlanOptionRepository {
	return &planOptionRepository{db: db}
}

func (r *planOptionRepository) Create(plan *models.PlanOption) error {
	return r.db.Omit(clause.Associations).Create(plan).Error
}

// GetForProfile loads a plan with its payments if the profile owns it.
func (r *planOptionRepository) GetForProfile(id, profileID uint) (*models.PlanOption, error) {
	var plan models.PlanOption
	err := r.db.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.id ASC") }).
		Where("profile_id = ?", profileID).
		First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planOptionRepository) ListByProfile(profileID uint) ([]models.PlanOption, error) {
	var plans []models.PlanOption
	err := r.db.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.id ASC") }).
		Where("profile_id = ?", profileID).
		Order("id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *planOptionRepository) Update(plan *models.PlanOption) error {
	return r.db.Omit(clause.Associations).Save(plan).Error
}

// Delete removes the plan with its payments, payers and their transactions.
func (r *planOptionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		plans := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.PlanOption{}).Select("id").Where("id = ?", id)
		if err := deletePlanChildren(tx, plans); err != nil {
			return err
		}
		return tx.Delete(&models.PlanOption{}, id).Error
	})
}
