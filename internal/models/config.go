package models

// Config represents the service configuration
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// Text recognition provider config
	Vision VisionConfig `yaml:"vision"`

	// Object storage config
	Storage StorageConfig `yaml:"storage"`
}

// VisionConfig selects and configures the external text-recognition provider
type VisionConfig struct {
	// Default provider: "gemini" or "openai"
	DefaultProvider string `yaml:"default_provider"`

	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`

	// Bounded retry on the recognition call. MaxAttempts <= 0 means 1 attempt;
	// TimeoutSeconds <= 0 means 30s per attempt.
	MaxAttempts    int `yaml:"max_attempts"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// GeminiConfig for Google Gemini vision transcription
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-1.5-flash"
}

// OpenAIConfig for OpenAI-compatible vision endpoints
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4o-mini"
}

// StorageConfig for the MinIO bucket holding receipt photos
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}
