package repository

import (
	"strings"

	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
)

type authTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository creates a new auth token repository instance
func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &authTokenRepository{db: db}
}

func (r *authTokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// GetByKey resolves a raw token key. Blank keys never match.
func (r *authTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var token models.AuthToken
	if err := r.db.Where(&models.AuthToken{Key: trimmed}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) GetByAccountID(accountID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Where("account_id = ?", accountID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) CountByAccountID(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.AuthToken{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
