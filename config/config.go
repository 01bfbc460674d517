package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"port"`
	Env            string   `mapstructure:"env"`
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	GroqAPIKey     string `mapstructure:"GROQ_API_KEY"`
	DeepgramAPIKey string `mapstructure:"DEEPGRAM_API_KEY"`

	GeminiModel  string `mapstructure:"gemini_model"`
	GroqEndpoint string `mapstructure:"groq_endpoint"`
	GroqModel    string `mapstructure:"groq_model"`

	MaxSessions int `mapstructure:"max_sessions"`
}

// LoadConfig reads the optional yaml config file and environment variables.
// A missing config file is not an error; every non-secret setting has a
// default so the server starts with nothing but API keys in the env.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8000")
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "")
	v.SetDefault("allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
	})
	v.SetDefault("gemini_model", "gemini-2.5-flash-preview-09-2025")
	v.SetDefault("groq_endpoint", "https://api.groq.com/openai/v1")
	v.SetDefault("groq_model", "llama-3.3-70b-versatile")
	v.SetDefault("max_sessions", 1000)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GROQ_API_KEY")
	v.BindEnv("DEEPGRAM_API_KEY")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(configPath); statErr == nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			// No file at the default path: run on defaults + env.
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
