package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DBConfig holds the optional artifact ledger database configuration
type DBConfig struct {
	Host            string
	Port            int    `validate:"min=1,max=65535"`
	User            string `validate:"required_with=Host"`
	Password        string
	Database        string `validate:"required_with=Host"`
	SSLMode         string `validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int    `validate:"min=1"`
	MaxIdleConns    int    `validate:"min=0"`
	ConnMaxLifetime time.Duration
}

// Config holds all configuration for the application
type Config struct {
	AssetsDir       string        `validate:"required"`
	OutputFile      string        `validate:"required"`
	ImageEndpoint   string        `validate:"required,url"`
	ImageWidth      int           `validate:"min=1,max=4096"`
	ImageHeight     int           `validate:"min=1,max=4096"`
	ImageTimeout    time.Duration `validate:"gt=0"`
	BackgroundColor string        `validate:"required,hexcolor"`
	CronSchedule    string        `validate:"required"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	LogFormat       string        `validate:"oneof=text json"`
	DB              DBConfig
}

// Load loads the configuration from environment variables, reading .env first when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{
		AssetsDir:       getString("ASSETS_DIR", "assets/presentation"),
		OutputFile:      getString("OUTPUT_FILE", "Corporate_Governance_and_Legal_Responsibilities.pptx"),
		ImageEndpoint:   getString("IMAGE_ENDPOINT", "https://image.pollinations.ai/prompt/"),
		ImageWidth:      getInt("IMAGE_WIDTH", 800),
		ImageHeight:     getInt("IMAGE_HEIGHT", 450),
		ImageTimeout:    getSeconds("IMAGE_TIMEOUT", 60*time.Second),
		BackgroundColor: getString("DECK_BACKGROUND_COLOR", "#d1c7e5"),
		CronSchedule:    getString("CRON_SCHEDULE", "0 0 * * * *"),
		LogLevel:        getString("LOG_LEVEL", "info"),
		LogFormat:       getString("LOG_FORMAT", "text"),
	}

	config.DB = DBConfig{
		Host:            os.Getenv("DB_HOST"),
		Port:            getInt("DB_PORT", 5432), // default PostgreSQL port
		User:            os.Getenv("DB_USER"),
		Password:        os.Getenv("DB_PASSWORD"),
		Database:        os.Getenv("DB_NAME"),
		SSLMode:         getString("DB_SSL_MODE", "disable"),
		MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 5),
		MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getSeconds("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LedgerEnabled reports whether the artifact ledger database is configured
func (c *Config) LedgerEnabled() bool {
	return c.DB.Host != ""
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getSeconds(key string, def time.Duration) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return time.Duration(v) * time.Second
	}
	return def
}
