package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements the AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account in the database
func (r *accountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByUsername retrieves an account by its username
func (r *accountRepository) GetByUsername(username string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("username = ?", username).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UsernameExists reports whether an account already uses the username
func (r *accountRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Update saves the account columns; it never touches the profile or token.
func (r *accountRepository) Update(account *models.Account) error {
	return r.db.Omit(clause.Associations).Save(account).Error
}

// Delete removes an account together with its token, profile and everything
// the profile owns.
func (r *accountRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		profiles := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Profile{}).Select("id").Where("account_id = ?", id)
		plans := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.PlanOption{}).Select("id").Where("profile_id IN (?)", profiles)
		if err := deletePlanChildren(tx, plans); err != nil {
			return err
		}
		if err := tx.Where("profile_id IN (?)", profiles).Delete(&models.PlanOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, id).Error
	})
}

// Count returns the total number of accounts
func (r *accountRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Count(&count).Error
	return count, err
}
