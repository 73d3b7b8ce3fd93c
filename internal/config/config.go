package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Mock     MockConfig
	Cron     CronConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// MockConfig controls the simulated backend
type MockConfig struct {
	Delay             time.Duration
	AcceptAnyPassword bool
	Seed              int64
	SeedOnStart       bool
	SeedMode          string
}

// CronConfig holds scheduled job specs. An empty spec disables the job.
type CronConfig struct {
	Retention    string
	Snapshot     string
	SnapshotPath string
}

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Seed modes
const (
	SeedStatic    = "static"
	SeedGenerated = "generated"
)

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	db, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}
	mock, err := loadMockConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: db,
		JWT:      loadJWTConfig(appMode),
		Mock:     mock,
		Cron: CronConfig{
			Retention:    getEnv("RETENTION_CRON", "@every 1h"),
			Snapshot:     os.Getenv("SNAPSHOT_CRON"),
			SnapshotPath: getEnv("SNAPSHOT_PATH", "procurehub-snapshot.json"),
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORAGE: %s]", appMode, db.Driver)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", DriverMemory)))
	defaultPort := "3306"
	switch driver {
	case DriverMemory, DriverMySQL:
	case DriverPostgres:
		defaultPort = "5432"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be memory, mysql or postgres)", driver)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "procurehub"),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	accessMins, err := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	if err != nil || accessMins <= 0 {
		accessMins = 60
	}

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadMockConfig loads simulated backend settings
func loadMockConfig() (MockConfig, error) {
	delay, err := time.ParseDuration(getEnv("MOCK_DELAY", "300ms"))
	if err != nil {
		return MockConfig{}, fmt.Errorf("invalid MOCK_DELAY: %w", err)
	}
	seed, err := strconv.ParseInt(getEnv("MOCK_SEED", "42"), 10, 64)
	if err != nil {
		return MockConfig{}, fmt.Errorf("invalid MOCK_SEED: %w", err)
	}
	anyPassword, _ := strconv.ParseBool(getEnv("MOCK_ACCEPT_ANY_PASSWORD", "true"))
	seedOnStart, _ := strconv.ParseBool(getEnv("SEED_ON_START", "true"))

	mode := strings.ToLower(getEnv("SEED_MODE", SeedStatic))
	if mode != SeedStatic && mode != SeedGenerated {
		return MockConfig{}, fmt.Errorf("invalid SEED_MODE: '%s' (must be static or generated)", mode)
	}

	return MockConfig{
		Delay:             delay,
		AcceptAnyPassword: anyPassword,
		Seed:              seed,
		SeedOnStart:       seedOnStart,
		SeedMode:          mode,
	}, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// UsesDatabase reports whether storage goes through gorm
func (c *Config) UsesDatabase() bool {
	return c.Database.Driver == DriverMySQL || c.Database.Driver == DriverPostgres
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.procurehub.io"
	}
	return origins
}
