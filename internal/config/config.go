package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the database connection settings. An empty URL
// selects the in-memory cache and progress backends.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains session verification settings. An empty secret
// disables authenticated sessions; all requests are then served
// anonymously.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

// LLMConfig contains the generation provider settings. Server-side API
// keys are all optional: a request may carry its own key, and the fallback
// key covers providers without a dedicated one.
type LLMConfig struct {
	DefaultProvider string `mapstructure:"default_provider" validate:"required,oneof=openai anthropic gemini"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	FallbackAPIKey  string `mapstructure:"fallback_api_key"`
	OpenAIModel     string `mapstructure:"openai_model"`
	AnthropicModel  string `mapstructure:"anthropic_model"`
	GeminiModel     string `mapstructure:"gemini_model"`
}
