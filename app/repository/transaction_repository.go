package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *models.Transaction) error {
	return r.db.Omit(clause.Associations).Create(transaction).Error
}

// GetForProfile loads a transaction whose payer is enrolled in one of the
// profile's plans.
func (r *transactionRepository) GetForProfile(id, profileID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.
		Where("payer_id IN (?)", payerIDsOfProfile(r.db, profileID)).
		First(&transaction, id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) Update(transaction *models.Transaction) error {
	return r.db.Omit(clause.Associations).Save(transaction).Error
}

func (r *transactionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Transaction{}, id).Error
}
