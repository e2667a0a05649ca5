package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config is read from the environment (and an optional .env file).
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"calories.db"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"72h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	AWSRegion     string `envconfig:"AWS_REGION"`
	S3Region      string `envconfig:"S3_REGION"`
	S3Bucket      string `envconfig:"S3_BUCKET"`
	CloudFrontURL string `envconfig:"CLOUDFRONT_URL"`
	SESEmail      string `envconfig:"SES_EMAIL"`

	MetricsEnabled  bool          `envconfig:"METRICS_ENABLED" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var missing []string

	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	switch c.DBDriver {
	case "postgres":
		if c.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
		if c.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be > 0")
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// Addr is the HTTP listen address.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// PostgresDSN builds the keyword/value DSN for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// StorageRegion is the S3 region, falling back to AWS_REGION.
func (c *Config) StorageRegion() string {
	if c.S3Region != "" {
		return c.S3Region
	}
	return c.AWSRegion
}

func (c *Config) MailEnabled() bool    { return c.AWSRegion != "" && c.SESEmail != "" }
func (c *Config) UploadsEnabled() bool { return c.StorageRegion() != "" && c.S3Bucket != "" }
