package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// DefaultAIProvider is used when a user has no provider preference.
	DefaultAIProvider string `env:"DEFAULT_AI_PROVIDER, default=openai"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Twilio TwilioConfig
	OpenAI OpenAIConfig
	XAI    XAIConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI"`
	Database string `env:"MONGODB_DB, default=mindmate"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// TwilioConfig holds SMS delivery credentials. All three values must be set
// for the channel to count as configured.
type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_PHONE_NUMBER"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL, default=https://api.openai.com/v1"`
	Model   string `env:"OPENAI_MODEL,    default=gpt-4o"`
}

type XAIConfig struct {
	APIKey  string `env:"XAI_API_KEY"`
	BaseURL string `env:"XAI_BASE_URL, default=https://api.x.ai/v1"`
	Model   string `env:"XAI_MODEL,    default=grok-2-latest"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevelopment reports whether the service runs in a development
// environment, which enables the OTP response fallback and pretty logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Mongo.URI == "" && !c.IsDevelopment() {
		return fmt.Errorf("config: MONGODB_URI is required outside development")
	}
	return nil
}
