package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

type StripeConfig struct {
	SecretKey  string
	PublicKey  string
	WebhookKey string
}

type ServerConfig struct {
	Port          string
	BaseURL       string
	SessionSecret string
}

type Config struct {
	AI              AIConfig
	DB              DBConfig
	Stripe          StripeConfig
	Server          ServerConfig
	ShutdownTimeout time.Duration
}

// Load loads the configuration
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Create a new viper instance
	v := viper.New()

	// Set the config name (without extension)
	v.SetConfigName("config")

	// Add supported config file types
	v.SetConfigType("yaml")
	v.SetConfigType("json")

	// Add paths where to look for the config file
	v.AddConfigPath(".")                // Look in current directory
	v.AddConfigPath("./config")         // Look in config subdirectory
	v.AddConfigPath("../config")        // Look in sibling config directory
	v.AddConfigPath("$HOME/.glowcheck") // Look in home directory

	// Set default values
	v.SetDefault("ShutdownTimeout", 10*time.Second)
	v.SetDefault("AI.BaseURL", "https://api.x.ai/v1")
	v.SetDefault("AI.Model", "grok-2-vision-latest")
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("Server.BaseURL", "http://localhost:3000")
	v.SetDefault("DB.MaxOpenConns", 20)
	v.SetDefault("DB.MaxIdleConns", 10)
	v.SetDefault("DB.ConnLifetime", 5*time.Minute)

	// Enable environment variables to override config values
	v.AutomaticEnv()

	// Try to read config file
	err := v.ReadInConfig()

	// If can't find config file, fall back to environment variables only
	if err != nil {
		fmt.Printf("Config file not found: %v\n", err)
		fmt.Println("Building config from environment variables...")

		cfg := &Config{}

		cfg.AI.APIKey = os.Getenv("XAI_API_KEY")
		cfg.AI.BaseURL = getEnvOr("XAI_BASE_URL", "https://api.x.ai/v1")
		cfg.AI.Model = getEnvOr("XAI_MODEL", "grok-2-vision-latest")
		cfg.DB.Host = os.Getenv("DB_HOST")
		cfg.DB.Port = getEnvOr("DB_PORT", "5432")
		cfg.DB.User = getEnvOr("DB_USER", "postgres")
		cfg.DB.Password = getEnvOr("DB_PASSWORD", "postgres")
		cfg.DB.DBName = getEnvOr("DB_NAME", "glowcheck")
		cfg.DB.SSLMode = getEnvOr("DB_SSL_MODE", "disable")
		cfg.DB.MaxOpenConns = 20
		cfg.DB.MaxIdleConns = 10
		cfg.DB.ConnLifetime = 5 * time.Minute
		cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
		cfg.Stripe.PublicKey = os.Getenv("STRIPE_PUBLISHABLE_KEY")
		cfg.Stripe.WebhookKey = os.Getenv("STRIPE_WEBHOOK_SECRET")
		cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
		cfg.Server.BaseURL = getEnvOr("APP_BASE_URL", "http://localhost:3000")
		cfg.Server.SessionSecret = getEnvOr("SESSION_SECRET", "glowcheck-dev-secret")
		cfg.ShutdownTimeout = 10 * time.Second

		return cfg, nil
	}

	// Process any ${ENV_VAR} syntax in the config values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			envValue := os.Getenv(envVar)
			if envValue != "" {
				v.Set(key, envValue)
			}
		}
	}

	// Unmarshal config to struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Server.SessionSecret == "" {
		cfg.Server.SessionSecret = "glowcheck-dev-secret"
	}

	return &cfg, nil
}

// HasDB reports whether enough database configuration is present to attempt
// a real Postgres connection. Without it the in-memory store is substituted.
func (c *Config) HasDB() bool {
	return c.DB.Host != ""
}

// Helper function to get environment variable with default value
func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
