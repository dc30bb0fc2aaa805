package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type payerRepository struct {
	db *gorm.DB
}

// NewPayerRepository creates a new payer repository instance
func NewPayerRepository(db *gorm.DB) PayerRepository {
	return &payerRepository{db: db}
}

func (r *payerRepository) Create(payer *models.Payer) error {
	return r.db.Omit(clause.Associations).Create(payer).Error
}

// GetForProfile loads a payer with plan and transactions if the payer is
// enrolled in one of the profile's plans.
func (r *payerRepository) GetForProfile(id, profileID uint) (*models.Payer, error) {
	var payer models.Payer
	err := r.db.
		Preload("PaymentPlan").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("transactions.id ASC") }).
		Where("payment_plan_id IN (?)", planIDsOfProfile(r.db, profileID)).
		First(&payer, id).Error
	if err != nil {
		return nil, err
	}
	return &payer, nil
}

func (r *payerRepository) ListByProfile(profileID uint) ([]models.Payer, error) {
	var payers []models.Payer
	err := r.db.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("transactions.id ASC") }).
		Where("payment_plan_id IN (?)", planIDsOfProfile(r.db, profileID)).
		Order("id ASC").
		Find(&payers).Error
	return payers, err
}

// VenmoUsernameTaken reports whether another payer already uses the wallet
// username. exceptID excludes the payer being updated.
func (r *payerRepository) VenmoUsernameTaken(username string, exceptID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Payer{}).Where("venmo_username = ?", username)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *payerRepository) Update(payer *models.Payer) error {
	return r.db.Omit(clause.Associations).Save(payer).Error
}

// Delete removes the payer and its transactions.
func (r *payerRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payer_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Payer{}, id).Error
	})
}
