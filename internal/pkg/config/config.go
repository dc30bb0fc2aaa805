package config

import (
	"fmt"
	"time"

	envparse "github.com/caarlos0/env/v11"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the runtime settings of the service, read from the process
// environment after the .env file has been loaded.
type Config struct {
	AppHost string `env:"APP_HOST" envDefault:"localhost"`
	AppPort string `env:"APP_PORT" envDefault:"4000"`
	AppEnv  string `env:"APP_ENV" envDefault:"prod"`

	Database Database
	Cache    Cache

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"120"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	MetricsUser     string `env:"METRICS_USER" envDefault:"admin"`
	MetricsPassword string `env:"METRICS_PASSWORD"`

	// SurveyBaseURL is the public survey page; the enrollment QR code points
	// to it with the survey code appended.
	SurveyBaseURL string `env:"SURVEY_BASE_URL"`
}

type Database struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"payplan_db"`
	// Path is the SQLite database file, only used with the sqlite driver.
	Path string `env:"DB_PATH" envDefault:"payplan.db"`
}

type Cache struct {
	Enabled  bool          `env:"CACHE_ENABLED" envDefault:"false"`
	Host     string        `env:"CACHE_HOST" envDefault:"localhost"`
	Port     int           `env:"CACHE_PORT" envDefault:"6379"`
	TokenTTL time.Duration `env:"CACHE_TOKEN_TTL" envDefault:"10m"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg, err := envparse.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	return nil
}

// ListenAddr is the host:port the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// MySQLDSN builds the go-sql-driver DSN used by GORM.
func (d Database) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// MigrateURL builds the golang-migrate database URL.
func (d Database) MigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}
