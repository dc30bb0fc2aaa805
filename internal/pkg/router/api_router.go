package router

import (
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/PayPlan/app/controllers"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
	"github.com/ManuelReschke/PayPlan/internal/pkg/constants"
	"github.com/ManuelReschke/PayPlan/internal/pkg/middleware"
)

// limiterDatabase keeps rate limit counters apart from the token cache (DB 0).
const limiterDatabase = 1

type ApiRouter struct {
	cfg *config.Config
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	controllers.InitializeProfileController(h.cfg)

	api := app.Group(constants.APIPrefix, limiter.New(h.limiterConfig()))
	api.Get(constants.PingRoute, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	api.Post(constants.AuthRoute, controllers.HandleObtainToken)

	tokenAuth := middleware.TokenAuthMiddleware()
	protected := func(handler fiber.Handler) []fiber.Handler {
		return []fiber.Handler{tokenAuth, middleware.RequireAPIAuth, handler}
	}

	api.Get(constants.UserRoute, protected(controllers.HandleGetProfile)...)
	api.Get(constants.SurveyQRRoute, protected(controllers.HandleGetSurveyQRCode)...)

	// Anonymous enrollees create payers with a survey code instead of a token.
	api.Post(constants.PayerRoute+constants.CreateSuffix, tokenAuth, controllers.HandleCreatePayer)
	detail(api, constants.PayerRoute, protected,
		controllers.HandleGetPayer, controllers.HandleUpdatePayer, controllers.HandleDeletePayer)

	api.Post(constants.TransactionRoute+constants.CreateSuffix, protected(controllers.HandleCreateTransaction)...)
	detail(api, constants.TransactionRoute, protected,
		controllers.HandleGetTransaction, controllers.HandleUpdateTransaction, controllers.HandleDeleteTransaction)

	api.Post(constants.PlanOptionRoute+constants.CreateSuffix, protected(controllers.HandleCreatePlanOption)...)
	detail(api, constants.PlanOptionRoute, protected,
		controllers.HandleGetPlanOption, controllers.HandleUpdatePlanOption, controllers.HandleDeletePlanOption)

	api.Post(constants.PaymentRoute+constants.CreateSuffix, protected(controllers.HandleCreatePayment)...)
	detail(api, constants.PaymentRoute, protected,
		controllers.HandleGetPayment, controllers.HandleUpdatePayment, controllers.HandleDeletePayment)
}

// detail registers the retrieve/update/destroy routes of a resource.
func detail(api fiber.Router, route string, protected func(fiber.Handler) []fiber.Handler, get, update, del fiber.Handler) {
	path := route + constants.DetailSuffix
	api.Get(path, protected(get)...)
	api.Put(path, protected(update)...)
	api.Patch(path, protected(update)...)
	api.Delete(path, protected(del)...)
}

func (h ApiRouter) limiterConfig() limiter.Config {
	cfg := limiter.Config{
		Max:        h.cfg.RateLimitMax,
		Expiration: h.cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "too_many_requests",
				"message": "Request was throttled.",
			})
		},
	}
	if storage := limiterStorage(); storage != nil {
		cfg.Storage = storage
	}
	return cfg
}

// limiterStorage shares the counters through the cache server so that every
// instance enforces the same limit. Without a cache the limiter keeps them in
// memory.
func limiterStorage() fiber.Storage {
	client := cache.GetClient()
	if client == nil {
		return nil
	}
	opts := client.Options()
	host, portStr, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil
	}
	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: opts.Password,
		Database: limiterDatabase,
		Reset:    false,
	})
}

func NewApiRouter(cfg *config.Config) *ApiRouter {
	return &ApiRouter{cfg: cfg}
}
