package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"journal/internal/database"
)

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	AppPort        string
	DBDriver       string
	DatabaseDSN    string
	RabbitMQURL    string
	ConsumeEvents  bool
	LogLevel       string
	LogPretty      bool
	AccessLog      bool
	AllowedOrigins []string
}

// Load reads the .env file named by ENV_FILE (default ".env") if it exists,
// then the environment. Variables already set in the environment win.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DB_DRIVER", database.DriverPostgres)
	v.SetDefault("DB_HOST_J", "localhost")
	v.SetDefault("DB_PORT_J", "5432")
	v.SetDefault("SQLITE_PATH", "journal.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("ACCESS_LOG", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CONSUME_USER_EVENTS", false)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		ConsumeEvents:  v.GetBool("CONSUME_USER_EVENTS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogPretty:      v.GetBool("LOG_PRETTY"),
		AccessLog:      v.GetBool("ACCESS_LOG"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	switch cfg.DBDriver {
	case database.DriverPostgres:
		cfg.DatabaseDSN = v.GetString("DATABASE_DSN")
		if cfg.DatabaseDSN == "" {
			dsn, err := postgresDSN(v)
			if err != nil {
				return nil, err
			}
			cfg.DatabaseDSN = dsn
		}
	case database.DriverSQLite:
		cfg.DatabaseDSN = v.GetString("DATABASE_DSN")
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = v.GetString("SQLITE_PATH")
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", database.DriverPostgres, database.DriverSQLite, cfg.DBDriver)
	}

	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}
	return cfg, nil
}

// postgresDSN assembles a connection URL from the DB_*_J variables.
func postgresDSN(v *viper.Viper) (string, error) {
	user := v.GetString("DB_USER_J")
	name := v.GetString("DB_NAME_J")
	if user == "" || name == "" {
		return "", errors.New("DB_USER_J and DB_NAME_J are required when DATABASE_DSN is not set")
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, v.GetString("DB_PASSWORD_J")),
		Host:   net.JoinHostPort(v.GetString("DB_HOST_J"), v.GetString("DB_PORT_J")),
		Path:   "/" + name,
	}
	return u.String(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String renders the configuration for logs with credentials masked.
func (c *Config) String() string {
	return fmt.Sprintf("port=%s driver=%s dsn=%s rabbitmq=%s log_level=%s origins=%s",
		c.AppPort, c.DBDriver, redact(c.DatabaseDSN), redact(c.RabbitMQURL), c.LogLevel, strings.Join(c.AllowedOrigins, ","))
}

// redact hides the password of URL-shaped values.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
