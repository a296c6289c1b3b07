package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"memescore/internal/logging"
)

// Config is the analyzer's configuration model.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	// Listen port. AI_BACKEND_PORT overrides.
	Port string `yaml:"port"`
	// gin mode: debug or release. GIN_MODE overrides.
	Mode         string        `yaml:"mode"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "none"
	// MEME_EXPLAINER_MODEL overrides.
	Model string `yaml:"model"`
	// If empty, read from env OPENAI_API_KEY
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	// Upper bound for one generation call. LLM_TIMEOUT overrides.
	Timeout time.Duration `yaml:"timeout"`
}

type NarrativeConfig struct {
	Locale string `yaml:"locale"` // "ko" or "en"
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "4100",
			Mode:         "debug",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		LLM:       LLMConfig{Provider: "openai", Model: "gpt-4o-mini", Timeout: 10 * time.Second},
		Narrative: NarrativeConfig{Locale: "ko"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// LoadEnv loads a local .env file into the process environment without
// overriding variables that are already set.
func LoadEnv(logger logging.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		if logger != nil {
			logger.Debugf("Loaded env file %s", file)
		}
	}
}

// ResolveEnv applies environment overrides. Set variables win over file values.
func (c *Config) ResolveEnv() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	setString(&c.LLM.Model, "MEME_EXPLAINER_MODEL")
	setString(&c.LLM.BaseURL, "OPENAI_BASE_URL")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.Server.Port, "AI_BACKEND_PORT")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Narrative.Locale, "MEMESCORE_LOCALE")
	if v := strings.TrimSpace(os.Getenv("LLM_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LLM.Timeout = d
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks values that would otherwise fail at startup.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "none":
	default:
		errs = append(errs, fmt.Errorf("llm.provider %q must be openai or none", c.LLM.Provider))
	}
	switch strings.ToLower(strings.TrimSpace(c.Narrative.Locale)) {
	case "ko", "en":
	default:
		errs = append(errs, fmt.Errorf("narrative.locale %q must be ko or en", c.Narrative.Locale))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("llm.timeout must be positive"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

// Load reads YAML config from path over the defaults, then applies env overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
