package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/app/repository"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
	"github.com/ManuelReschke/PayPlan/internal/pkg/enrollment"
)

// MaxCodeAttempts bounds survey code generation during registration.
const MaxCodeAttempts = 5

var (
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("unable to log in with provided credentials")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrSurveyCodeExhausted = errors.New("could not generate a unique survey code")

	errSurveyCodeCollision = errors.New("survey code collision")
)

// Registration is the result of Register: the new account with the bearer
// token and the profile created alongside it.
type Registration struct {
	Account *models.Account
	Token   *models.AuthToken
	Profile *models.Profile
}

// Service owns the account lifecycle. It is the only place that creates
// profiles and tokens.
type Service struct {
	db           *gorm.DB
	generateCode func() (string, error)
}

// NewService creates an account service on a GORM DB handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, generateCode: enrollment.GenerateCode}
}

// Register creates an account, its token and its profile in one transaction.
// A survey code collision restarts the transaction with a fresh code, at most
// MaxCodeAttempts times.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Registration, error) {
	account, err := models.NewAccount(username, email, password)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(s.db.WithContext(ctx))
	taken, err := repos.Account.UsernameExists(account.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, err
		}

		candidate := *account
		reg, err := s.register(ctx, &candidate, code)
		if errors.Is(err, errSurveyCodeCollision) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return reg, nil
	}

	return nil, ErrSurveyCodeExhausted
}

func (s *Service) register(ctx context.Context, account *models.Account, code string) (*Registration, error) {
	reg := &Registration{Account: account}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := repository.NewRepositories(tx)

		exists, err := repos.Profile.SurveyCodeExists(code)
		if err != nil {
			return err
		}
		if exists {
			return errSurveyCodeCollision
		}

		if err := repos.Account.Create(account); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return err
		}

		token, err := models.NewAuthToken(account.ID)
		if err != nil {
			return err
		}
		if err := repos.AuthToken.Create(token); err != nil {
			return err
		}
		reg.Token = token

		profile := &models.Profile{AccountID: account.ID, SurveyCode: code}
		if err := repos.Profile.Create(profile); err != nil {
			// Lost a race against a concurrent registration with the same code.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errSurveyCodeCollision
			}
			return err
		}
		reg.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Authenticate checks a username and password and returns the account's
// token key.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	repos := repository.NewRepositories(s.db.WithContext(ctx))

	account, err := repos.Account.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !account.CheckPassword(password) {
		return "", ErrInvalidCredentials
	}
	if !account.IsActive {
		return "", ErrAccountInactive
	}

	token, err := repos.AuthToken.GetByAccountID(account.ID)
	if err != nil {
		return "", fmt.Errorf("load token of account %d: %w", account.ID, err)
	}

	account.TouchLogin()
	if err := repos.Account.Update(account); err != nil {
		return "", err
	}
	return token.Key, nil
}

// UpdateAccount saves changes to an existing account. It never provisions a
// second profile or token.
func (s *Service) UpdateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == 0 {
		return errors.New("account must be registered before it can be updated")
	}
	if err := account.Validate(); err != nil {
		return err
	}
	return repository.NewRepositories(s.db.WithContext(ctx)).Account.Update(account)
}

// Token returns the token key of the named account.
func (s *Service) Token(ctx context.Context, username string) (string, error) {
	repos := repository.NewRepositories(s.db.WithContext(ctx))
	account, err := repos.Account.GetByUsername(username)
	if err != nil {
		return "", err
	}
	token, err := repos.AuthToken.GetByAccountID(account.ID)
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

// DeleteAccount removes the account with everything it owns and evicts its
// token from the cache.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	repos := repository.NewRepositories(s.db.WithContext(ctx))
	account, err := repos.Account.GetByUsername(username)
	if err != nil {
		return err
	}
	token, err := repos.AuthToken.GetByAccountID(account.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := repos.Account.Delete(account.ID); err != nil {
		return err
	}
	if token != nil {
		if err := cache.Delete(TokenCacheKey(token.Key)); err != nil && !cache.IsMiss(err) {
			fiberlog.Warnf("[Accounts] failed to evict cached token of account %d: %v", account.ID, err)
		}
	}
	return nil
}

// TokenCacheKey is the cache key under which a resolved token is stored.
func TokenCacheKey(rawKey string) string {
	return "auth_token:" + models.HashTokenKey(rawKey)
}
