package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB   int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCorrelateDB int    `mapstructure:"REDIS_CORRELATE_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`
	RedisPlannerDB   int    `mapstructure:"REDIS_PLANNER_DB"`

	// Collaborator base URLs. An empty TripPlanServiceURL switches the
	// planner adapter to the local Gemini responder.
	AuthServiceURL     string `mapstructure:"AUTH_SERVICE_URL"`
	TripPlanServiceURL string `mapstructure:"TRIPPLAN_SERVICE_URL"`
	DealsServiceURL    string `mapstructure:"DEALS_SERVICE_URL"`
	GroupsServiceURL   string `mapstructure:"GROUPS_SERVICE_URL"`
	PaymentsServiceURL string `mapstructure:"PAYMENTS_SERVICE_URL"`

	// Gemini API key for the local planner.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Conversation engine knobs.
	DefaultCountryCode      string `mapstructure:"DEFAULT_COUNTRY_CODE"`
	StrictPassengerDetails  bool   `mapstructure:"STRICT_PASSENGER_DETAILS"`
	SessionIdleTTLMin       int    `mapstructure:"SESSION_IDLE_TTL_MIN"`
	FeedbackNudgeDelayHours int    `mapstructure:"FEEDBACK_NUDGE_DELAY_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CORRELATE_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("REDIS_PLANNER_DB", 3)
	viper.SetDefault("AUTH_SERVICE_URL", "http://localhost:8001")
	viper.SetDefault("TRIPPLAN_SERVICE_URL", "")
	viper.SetDefault("DEALS_SERVICE_URL", "http://localhost:8002")
	viper.SetDefault("GROUPS_SERVICE_URL", "http://localhost:8002")
	viper.SetDefault("PAYMENTS_SERVICE_URL", "http://localhost:8002")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("DEFAULT_COUNTRY_CODE", "+91")
	viper.SetDefault("STRICT_PASSENGER_DETAILS", false)
	viper.SetDefault("SESSION_IDLE_TTL_MIN", 60)
	viper.SetDefault("FEEDBACK_NUDGE_DELAY_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
