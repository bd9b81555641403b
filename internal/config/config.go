package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"desearch/internal/domain"
)

const (
	// DefaultAPIURL is the local development endpoint of the search service
	DefaultAPIURL = "http://localhost:8001"
	fileName      = "config.toml"
	appDir        = "desearch"
)

var (
	// ErrNotFound is returned when an explicitly requested config file does not exist
	ErrNotFound = errors.New("config file not found")
	// ErrInvalid wraps validation failures
	ErrInvalid = errors.New("invalid configuration")
)

// Config represents the application configuration
type Config struct {
	APIURL            string   `toml:"api_url" env:"DESEARCH_API_URL" validate:"required,url"`
	Timeout           Duration `toml:"timeout" env:"DESEARCH_TIMEOUT" validate:"gt=0"`
	Limit             int      `toml:"limit" env:"DESEARCH_LIMIT" validate:"gte=0,lte=100"`
	CacheTTL          Duration `toml:"cache_ttl" env:"DESEARCH_CACHE_TTL" validate:"gte=0"`
	Topics            []string `toml:"topics" env:"DESEARCH_TOPICS" envSeparator:","`
	DefaultDifficulty string   `toml:"default_difficulty" env:"DESEARCH_DIFFICULTY" validate:"omitempty,oneof=Easy Medium Hard"`

	Log     LogSettings     `toml:"log"`
	Tracing TracingSettings `toml:"tracing"`
	UI      UISettings      `toml:"ui"`
}

// LogSettings configures the rotating log file
type LogSettings struct {
	File       string `toml:"file" env:"DESEARCH_LOG_FILE"`
	Level      string `toml:"level" env:"DESEARCH_LOG_LEVEL" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" validate:"gte=0"`
}

// TracingSettings configures OpenTelemetry export
type TracingSettings struct {
	Enabled     bool   `toml:"enabled" env:"DESEARCH_TRACING_ENABLED"`
	Endpoint    string `toml:"endpoint" env:"DESEARCH_TRACING_ENDPOINT" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	OpenCommand      string `toml:"open_command" env:"DESEARCH_OPEN_COMMAND"`
	ShowDescriptions bool   `toml:"show_descriptions"`
}

// Difficulty returns the configured default difficulty. Validation guarantees
// the value parses.
func (c *Config) Difficulty() domain.Difficulty {
	d, _ := domain.ParseDifficulty(c.DefaultDifficulty)
	return d
}

// Duration is a time.Duration written as a string ("10s") in TOML and env vars
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath   string
	dotenvPath string
	validate   *validator.Validate
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return NewConfigServiceAt(filepath.Join(configDir, appDir, fileName))
}

// NewConfigServiceAt creates a config service whose default file is path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{
		filePath:   path,
		dotenvPath: ".env",
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Path returns the default config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the default config file, falling back to defaults when it does
// not exist, then applies environment overrides and validates the result.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
		if err := cs.finish(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// LoadFromPath reads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cs.finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies .env and process environment overrides, then validates
func (cs *configService) finish(cfg *Config) error {
	if err := ApplyEnvironment(cfg, cs.dotenvPath); err != nil {
		return err
	}
	return cs.check(cfg)
}

func (cs *configService) check(cfg *Config) error {
	if err := cs.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Save saves the configuration to the default file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := cs.check(config); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the configuration as TOML
func Marshal(config *Config) ([]byte, error) {
	data, err := toml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ApplyEnvironment overlays variables from an optional dotenv file and the
// process environment onto cfg. Process variables win over the dotenv file.
func ApplyEnvironment(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	logDir, err := os.UserCacheDir()
	if err != nil {
		logDir = os.TempDir()
	}

	return &Config{
		APIURL:   DefaultAPIURL,
		Timeout:  Duration(10 * time.Second),
		Limit:    0,
		CacheTTL: 0,
		Topics:   []string{"Algorithms", "Data Structures", "System Design"},
		Log: LogSettings{
			File:       filepath.Join(logDir, appDir, "desearch.log"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Tracing: TracingSettings{
			Endpoint:    "localhost:4318",
			ServiceName: "desearch",
		},
		UI: UISettings{
			ShowDescriptions: true,
		},
	}
}
