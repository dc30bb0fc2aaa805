package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Omit(clause.Associations).Create(payment).Error
}

// GetForProfile loads a payment whose plan belongs to the profile. Payments
// without a plan are unreachable.
func (r *paymentRepository) GetForProfile(id, profileID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.
		Where("payment_plan_id IN (?)", planIDsOfProfile(r.db, profileID)).
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	return r.db.Omit(clause.Associations).Save(payment).Error
}

func (r *paymentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Payment{}, id).Error
}
