package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Events    EventsConfig    `mapstructure:"events"`
	Task      TaskConfig      `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"omitempty,gte=4,lte=31"`
}

// NarrativeConfig contains settings for the optional LLM-backed
// narrative generator. When disabled (or no API key is configured), the
// deterministic template generator is used instead.
type NarrativeConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Enabled true"`
	ModelName    string `mapstructure:"model_name"`
}

// EventsConfig contains settings for publishing reading-computed events
// to Kafka. When disabled, events stay in-process.
type EventsConfig struct {
	KafkaEnabled bool     `mapstructure:"kafka_enabled"`
	KafkaBrokers []string `mapstructure:"kafka_brokers" validate:"required_if=KafkaEnabled true"`
	KafkaTopic   string   `mapstructure:"kafka_topic"   validate:"required_if=KafkaEnabled true"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"omitempty,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"omitempty,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"omitempty,gt=0"`
}
