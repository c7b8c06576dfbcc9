package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the optional YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Gemini  GeminiConfig  `koanf:"gemini"`
	Books   BooksConfig   `koanf:"books"`
	Redis   RedisConfig   `koanf:"redis"`
	CORS    CORSConfig    `koanf:"cors"`
	Logging LoggingConfig `koanf:"logging"`
}

type ServerConfig struct {
	Port         string        `koanf:"port"`
	Env          string        `koanf:"env"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// GeminiConfig holds the provider credential and the generation parameters.
// The parameters are applied once when the model handle is built.
type GeminiConfig struct {
	APIKey          string  `koanf:"api_key"`
	Model           string  `koanf:"model"`
	Temperature     float32 `koanf:"temperature"`
	TopP            float32 `koanf:"top_p"`
	TopK            int32   `koanf:"top_k"`
	MaxOutputTokens int32   `koanf:"max_output_tokens"`
}

type BooksConfig struct {
	Path string `koanf:"path"`
}

// RedisConfig is optional. An empty URL disables feedback fan-out.
type RedisConfig struct {
	URL             string `koanf:"url"`
	FeedbackChannel string `koanf:"feedback_channel"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			Env:          "development",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Gemini: GeminiConfig{
			Model:           "gemini-2.0-flash",
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
		Books: BooksConfig{
			Path: "data/books.json",
		},
		Redis: RedisConfig{
			FeedbackChannel: "bookbot:feedback",
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first if it exists.
func Load() (*Config, error) {
	godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitCommaList(k, "cors.origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return fmt.Errorf("required environment variable GEMINI_API_KEY is not set")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be between 0 and 2, got %v", c.Gemini.Temperature)
	}
	if c.Gemini.TopP <= 0 || c.Gemini.TopP > 1 {
		return fmt.Errorf("GEMINI_TOP_P must be in (0, 1], got %v", c.Gemini.TopP)
	}
	if c.Gemini.TopK < 1 {
		return fmt.Errorf("GEMINI_TOP_K must be positive, got %d", c.Gemini.TopK)
	}
	if c.Gemini.MaxOutputTokens < 1 {
		return fmt.Errorf("GEMINI_MAX_OUTPUT_TOKENS must be positive, got %d", c.Gemini.MaxOutputTokens)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envMappings = map[string]string{
	"port":                     "server.port",
	"env":                      "server.env",
	"read_timeout":             "server.read_timeout",
	"write_timeout":            "server.write_timeout",
	"idle_timeout":             "server.idle_timeout",
	"gemini_api_key":           "gemini.api_key",
	"gemini_model":             "gemini.model",
	"gemini_temperature":       "gemini.temperature",
	"gemini_top_p":             "gemini.top_p",
	"gemini_top_k":             "gemini.top_k",
	"gemini_max_output_tokens": "gemini.max_output_tokens",
	"books_path":               "books.path",
	"redis_url":                "redis.url",
	"feedback_channel":         "redis.feedback_channel",
	"cors_origins":             "cors.origins",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
}

// envTransformFunc maps known environment variables to config keys.
// Everything else is skipped so unrelated variables never leak in.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func splitCommaList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}

	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return nil
	}

	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
