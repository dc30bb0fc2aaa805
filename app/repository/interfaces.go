package repository

import (
	"github.com/ManuelReschke/PayPlan/app/models"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account-related database operations
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByUsername(username string) (*models.Account, error)
	UsernameExists(username string) (bool, error)
	Update(account *models.Account) error
	Delete(id uint) error
	Count() (int64, error)
}

// AuthTokenRepository defines the interface for bearer token lookups
type AuthTokenRepository interface {
	Create(token *models.AuthToken) error
	GetByKey(key string) (*models.AuthToken, error)
	GetByAccountID(accountID uint) (*models.AuthToken, error)
	CountByAccountID(accountID uint) (int64, error)
}

// ProfileRepository defines the interface for profile-related database operations
type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetByID(id uint) (*models.Profile, error)
	GetByAccountID(accountID uint) (*models.Profile, error)
	GetBySurveyCode(code string) (*models.Profile, error)
	GetWithPlans(id uint) (*models.Profile, error)
	SurveyCodeExists(code string) (bool, error)
	CountByAccountID(accountID uint) (int64, error)
}

// PlanOptionRepository defines the interface for payment plan options.
// Every lookup is scoped to the owning profile.
type PlanOptionRepository interface {
	Create(plan *models.PlanOption) error
	GetForProfile(id, profileID uint) (*models.PlanOption, error)
	ListByProfile(profileID uint) ([]models.PlanOption, error)
	Update(plan *models.PlanOption) error
	Delete(id uint) error
}

// PaymentRepository defines the interface for scheduled payments, scoped
// through their plan.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetForProfile(id, profileID uint) (*models.Payment, error)
	Update(payment *models.Payment) error
	Delete(id uint) error
}

// PayerRepository defines the interface for payers, scoped through their plan.
type PayerRepository interface {
	Create(payer *models.Payer) error
	GetForProfile(id, profileID uint) (*models.Payer, error)
	ListByProfile(profileID uint) ([]models.Payer, error)
	VenmoUsernameTaken(username string, exceptID uint) (bool, error)
	Update(payer *models.Payer) error
	Delete(id uint) error
}

// TransactionRepository defines the interface for completed transactions,
// scoped through payer and plan.
type TransactionRepository interface {
	Create(transaction *models.Transaction) error
	GetForProfile(id, profileID uint) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Account     AccountRepository
	AuthToken   AuthTokenRepository
	Profile     ProfileRepository
	PlanOption  PlanOptionRepository
	Payment     PaymentRepository
	Payer       PayerRepository
	Transaction TransactionRepository
}

// NewRepositories creates a new instance of all repositories. Pass a
// transaction handle to get repositories bound to that transaction.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Account:     NewAccountRepository(db),
		AuthToken:   NewAuthTokenRepository(db),
		Profile:     NewProfileRepository(db),
		PlanOption:  NewPlanOptionRepository(db),
		Payment:     NewPaymentRepository(db),
		Payer:       NewPayerRepository(db),
		Transaction: NewTransactionRepository(db),
	}
}
