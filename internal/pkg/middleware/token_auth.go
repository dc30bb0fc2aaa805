package middleware

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/repository"
	"github.com/ManuelReschke/PayPlan/internal/pkg/accounts"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
	"github.com/ManuelReschke/PayPlan/internal/pkg/usercontext"
)

// TokenCacheTTL is how long a resolved token stays cached.
var TokenCacheTTL = 10 * time.Minute

var errInactiveAccount = errors.New("account inactive")

// TokenAuthMiddleware authenticates requests carrying
// "Authorization: Token <key>" and stores the caller in the user context.
// Requests without a credential pass through anonymously, RequireAPIAuth
// rejects them where a caller is needed. A credential that is present but
// invalid is always rejected.
func TokenAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, present := extractTokenFromHeader(c)
		if !present {
			return c.Next()
		}
		if key == "" {
			return unauthorized(c, "Invalid token header")
		}

		userCtx, err := resolveToken(key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c, "Invalid token")
			}
			if errors.Is(err, errInactiveAccount) {
				return unauthorized(c, "User inactive or deleted")
			}
			fiberlog.Errorf("token lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Token verification failed"})
		}

		usercontext.SetUserContext(c, userCtx)
		return c.Next()
	}
}

// resolveToken maps a token key to the caller, consulting the cache first.
func resolveToken(key string) (usercontext.UserContext, error) {
	cacheKey := accounts.TokenCacheKey(key)
	if cached, err := cache.Get(cacheKey); err == nil {
		var userCtx usercontext.UserContext
		if jsonErr := json.Unmarshal([]byte(cached), &userCtx); jsonErr == nil && userCtx.IsLoggedIn {
			return userCtx, nil
		}
	} else if !cache.IsMiss(err) {
		fiberlog.Warnf("token cache lookup failed: %v", err)
	}

	repos := repository.GetGlobalRepositories()
	token, err := repos.AuthToken.GetByKey(key)
	if err != nil {
		return usercontext.UserContext{}, err
	}
	account, err := repos.Account.GetByID(token.AccountID)
	if err != nil {
		return usercontext.UserContext{}, err
	}
	if !account.IsActive {
		return usercontext.UserContext{}, errInactiveAccount
	}
	profile, err := repos.Profile.GetByAccountID(account.ID)
	if err != nil {
		return usercontext.UserContext{}, err
	}

	userCtx := usercontext.UserContext{
		AccountID:  account.ID,
		ProfileID:  profile.ID,
		Username:   account.Username,
		IsLoggedIn: true,
	}
	if payload, err := json.Marshal(userCtx); err == nil {
		if err := cache.Set(cacheKey, payload, TokenCacheTTL); err != nil && !cache.IsMiss(err) {
			fiberlog.Warnf("token cache store failed: %v", err)
		}
	}
	return userCtx, nil
}

// extractTokenFromHeader returns the key of an "Authorization: Token <key>"
// (or "Bearer <key>") header and whether such a header was sent at all.
func extractTokenFromHeader(c *fiber.Ctx) (string, bool) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return "", false
	}
	scheme, key, _ := strings.Cut(auth, " ")
	switch strings.ToLower(scheme) {
	case "token", "bearer":
	default:
		// Other schemes are not ours to judge.
		return "", false
	}
	key = strings.TrimSpace(key)
	if strings.ContainsAny(key, " \t") {
		return "", true
	}
	return key, true
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Token")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": message})
}
