package main

import (
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/ManuelReschke/PayPlan/app/repository"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
	"github.com/ManuelReschke/PayPlan/internal/pkg/constants"
	"github.com/ManuelReschke/PayPlan/internal/pkg/database"
	"github.com/ManuelReschke/PayPlan/internal/pkg/env"
	"github.com/ManuelReschke/PayPlan/internal/pkg/middleware"
	"github.com/ManuelReschke/PayPlan/internal/pkg/router"
)

func main() {
	app, cfg := NewApplication()
	err := app.Listen(cfg.ListenAddr())
	log.Fatal(err)
}

func NewApplication() (*fiber.App, *config.Config) {
	env.SetupEnvFile()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database.SetupDatabase(cfg.Database)
	repository.InitializeFactory(database.GetDB())
	cache.SetupCache(cfg.Cache)
	middleware.TokenCacheTTL = cfg.Cache.TokenTTL

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/payplan to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	app := fiber.New(fiber.Config{
		AppName:       "PayPlan",
		StrictRouting: true,
		BodyLimit:     1024 * 1024,
	})

	// recovery, request id and logging
	app.Use(recover.New(), requestid.New(requestid.Config{Generator: uuid.NewString}), logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// fiber metrics
	if cfg.MetricsPassword != "" {
		app.Get(constants.MetricsRoute, basicauth.New(basicauth.Config{
			Users: map[string]string{
				cfg.MetricsUser: cfg.MetricsPassword,
			},
		}), monitor.New())
	} else {
		log.Println("METRICS_PASSWORD not set, /metrics is disabled")
	}

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: constants.DocsBasePath,
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     constants.DocsPath,
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app, cfg)

	return app, cfg
}
