package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode

	// AI Configuration
	LLMProvider  string `mapstructure:"LLM_PROVIDER"`   // "gemini" or "openai"
	APIKey       string `mapstructure:"API_KEY"`        // Gemini API key
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"` // Fallback name for the Gemini key
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`
	OpenAIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	// View Defaults
	DefaultFramework string `mapstructure:"DEFAULT_FRAMEWORK"`
	DefaultPrompt    string `mapstructure:"DEFAULT_PROMPT"`

	// Variant switches
	ClearResultOnError          bool `mapstructure:"CLEAR_RESULT_ON_ERROR"`
	RegenerateOnFrameworkChange bool `mapstructure:"REGENERATE_ON_FRAMEWORK_CHANGE"`

	SessionCacheSize int `mapstructure:"SESSION_CACHE_SIZE"`
	CopyAckMillis    int `mapstructure:"COPY_ACK_MILLIS"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":                 ":8080",
	"APP_ENV":                        "",
	"LLM_PROVIDER":                   "gemini",
	"API_KEY":                        "",
	"GEMINI_API_KEY":                 "",
	"GEMINI_MODEL":                   "gemini-3-pro-preview",
	"OPENAI_API_KEY":                 "",
	"OPENAI_MODEL":                   "gpt-4o",
	"DEFAULT_FRAMEWORK":              "FastAPI",
	"DEFAULT_PROMPT":                 "A simple user profile app with real-time updates for a status message.",
	"CLEAR_RESULT_ON_ERROR":          true,
	"REGENERATE_ON_FRAMEWORK_CHANGE": true,
	"SESSION_CACHE_SIZE":             1024,
	"COPY_ACK_MILLIS":                2000,
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv() // Read environment variables that match keys

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Info: config.yaml not found, relying on environment variables and defaults.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.LLMProvider = strings.ToLower(strings.TrimSpace(config.LLMProvider))
	if config.SessionCacheSize <= 0 {
		return Config{}, fmt.Errorf("SESSION_CACHE_SIZE must be positive, got %d", config.SessionCacheSize)
	}
	if config.CopyAckMillis <= 0 {
		config.CopyAckMillis = 2000
	}

	switch config.LLMProvider {
	case "gemini":
		if config.GeminiKeySource()() == "" {
			log.Println("WARN: API_KEY is not set. Generation requests will be rejected by the provider.")
		}
	case "openai":
		if config.OpenAIKeySource()() == "" {
			log.Println("WARN: OPENAI_API_KEY is not set. Generation requests will be rejected by the provider.")
		}
	}

	return
}

// CopyAckDuration is how long the "Copied!" acknowledgement stays visible.
func (c Config) CopyAckDuration() time.Duration {
	return time.Duration(c.CopyAckMillis) * time.Millisecond
}

// GeminiKeySource returns a lookup that reads the Gemini key from the process environment
// each time it is called, falling back to the value loaded at startup.
func (c Config) GeminiKeySource() func() string {
	return keySource(firstNonEmpty(c.APIKey, c.GeminiAPIKey), "API_KEY", "GEMINI_API_KEY")
}

// OpenAIKeySource is the OpenAI counterpart of GeminiKeySource.
func (c Config) OpenAIKeySource() func() string {
	return keySource(c.OpenAIKey, "OPENAI_API_KEY")
}

func keySource(loaded string, envNames ...string) func() string {
	return func() string {
		for _, name := range envNames {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				return v
			}
		}
		return strings.TrimSpace(loaded)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
