package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI      AIConfig      `yaml:"ai"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Audio   AudioConfig   `yaml:"audio"`
	Server  ServerConfig  `yaml:"server"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	// ModelCandidates is tried in order until one answers; it is a
	// priority list, not a random choice.
	ModelCandidates      []string `yaml:"model_candidates"`
	UploadPollSeconds    int      `yaml:"upload_poll_seconds"`
	UploadTimeoutMinutes int      `yaml:"upload_timeout_minutes"`
}

type YouTubeConfig struct {
	// APIKey enables metadata lookups through the YouTube Data API.
	// When empty, metadata falls back to a yt-dlp subprocess.
	APIKey       string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type AudioConfig struct {
	// Dir is the working directory for fallback audio downloads.
	Dir string `yaml:"dir"`
	// CleanupSchedule is a cron expression for purging stale audio files.
	CleanupSchedule string `yaml:"cleanup_schedule"`
	MaxAgeHours     int    `yaml:"max_age_hours"`
}

type ServerConfig struct {
	Port            int    `yaml:"port"`
	HealthPort      int    `yaml:"health_port"`
	DefaultLanguage string `yaml:"default_language"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.YouTube.ClientID == "" {
		cfg.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.YouTube.ClientSecret == "" {
		cfg.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if cfg.YouTube.TokenFile == "" {
		cfg.YouTube.TokenFile = "youtube_token.json"
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.AI.ModelCandidates) == 0 {
		c.AI.ModelCandidates = []string{
			"gemini-2.5-flash",
			"gemini-2.5-flash-lite",
			"gemini-1.5-flash",
		}
	}
	if c.AI.UploadPollSeconds <= 0 {
		c.AI.UploadPollSeconds = 2
	}
	if c.AI.UploadTimeoutMinutes <= 0 {
		c.AI.UploadTimeoutMinutes = 5
	}
	if c.Audio.Dir == "" {
		c.Audio.Dir = "data/audio"
	}
	if c.Audio.CleanupSchedule == "" {
		c.Audio.CleanupSchedule = "0 * * * *" // Hourly
	}
	if c.Audio.MaxAgeHours <= 0 {
		c.Audio.MaxAgeHours = 6
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.HealthPort <= 0 {
		c.Server.HealthPort = 8081
	}
	if c.Server.DefaultLanguage == "" {
		c.Server.DefaultLanguage = "English"
	}
}

func (c *Config) validate() error {
	// The shared Gemini key is optional at startup: a request may carry
	// its own key, which takes priority. A run with neither is refused
	// before any network call.
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must differ (both %d)", c.Server.Port)
	}
	return nil
}

// UploadPollInterval is how often audio-processing state is polled.
func (c *AIConfig) UploadPollInterval() time.Duration {
	return time.Duration(c.UploadPollSeconds) * time.Second
}

// UploadTimeout bounds the total wait for audio processing.
func (c *AIConfig) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutMinutes) * time.Minute
}

// MaxAge is the age after which a leftover audio file is purged.
func (c *AudioConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}
