package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
)

// planIDsOfProfile selects the ids of all plans owned by a profile. Payments,
// payers and transactions are scoped through it.
func planIDsOfProfile(db *gorm.DB, profileID uint) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.PlanOption{}).Select("id").Where("profile_id = ?", profileID)
}

// payerIDsOfProfile selects the ids of all payers enrolled in one of the
// profile's plans.
func payerIDsOfProfile(db *gorm.DB, profileID uint) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Payer{}).Select("id").Where("payment_plan_id IN (?)", planIDsOfProfile(db, profileID))
}

// deletePlanChildren removes transactions, payers and payments hanging off
// the selected plans. plans must be a subquery selecting plan ids.
func deletePlanChildren(tx *gorm.DB, plans *gorm.DB) error {
	payers := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Payer{}).Select("id").Where("payment_plan_id IN (?)", plans)
	if err := tx.Where("payer_id IN (?)", payers).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("payment_plan_id IN (?)", plans).Delete(&models.Payer{}).Error; err != nil {
		return err
	}
	return tx.Where("payment_plan_id IN (?)", plans).Delete(&models.Payment{}).Error
}
