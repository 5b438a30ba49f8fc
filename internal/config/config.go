// Package config loads stockkeeper settings from defaults, an optional TOML
// file, a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultAddr        = ":8080"
	defaultDBPath      = "./data/inventory.db"
	defaultSessionTTL  = 24 * time.Hour
	defaultSMSMode     = SMSModeLog
	defaultSMSTimeout  = 5 * time.Second
	defaultLogLevel    = "info"
	defaultLogMaxSize  = 10
	defaultLogMaxFiles = 5
)

// SMS delivery modes.
const (
	SMSModeLog     = "log"
	SMSModeWebhook = "webhook"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	SMS     SMSConfig     `toml:"sms"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

type StorageConfig struct {
	Path string `toml:"path" validate:"required"`
}

type AuthConfig struct {
	JWTSecret  string        `toml:"jwt_secret" validate:"omitempty,min=16"`
	SessionTTL time.Duration `toml:"session_ttl" validate:"gt=0"`
}

type SMSConfig struct {
	Mode       string        `toml:"mode" validate:"oneof=log webhook"`
	WebhookURL string        `toml:"webhook_url" validate:"omitempty,url"`
	Timeout    time.Duration `toml:"timeout" validate:"gt=0"`
}

type LoggingConfig struct {
	Level     string `toml:"level" validate:"oneof=debug info warn error"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb" validate:"gte=0"`
	MaxFiles  int    `toml:"max_files" validate:"gte=0"`
}

type LoadOptions struct {
	// ConfigPath is the TOML file to read. Empty falls back to
	// STOCKKEEPER_CONFIG; a missing file is not an error.
	ConfigPath string
	// DotEnvPath is the .env file to read. Empty means ".env".
	DotEnvPath string
	// Env replaces the process environment when non-nil (tests).
	Env map[string]string
}

func DefaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: defaultAddr},
		Storage: StorageConfig{Path: defaultDBPath},
		Auth:    AuthConfig{SessionTTL: defaultSessionTTL},
		SMS: SMSConfig{
			Mode:    defaultSMSMode,
			Timeout: defaultSMSTimeout,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			MaxSizeMB: defaultLogMaxSize,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

// Load builds the effective configuration and validates it.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	dotenv, err := readDotEnv(opts.DotEnvPath)
	if err != nil {
		return Config{}, err
	}
	env := func(key string) (string, bool) {
		return lookupEnv(opts, dotenv, key)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath, _ = env("STOCKKEEPER_CONFIG")
	}
	if err := loadFile(configPath, &cfg); err != nil {
		return Config{}, err
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return fmt.Errorf("%w: %s failed %s", ErrInvalidConfig, fieldErr.Namespace(), fieldErr.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.SMS.Mode == SMSModeWebhook && c.SMS.WebhookURL == "" {
		return fmt.Errorf("%w: sms.webhook_url is required in webhook mode", ErrInvalidConfig)
	}
	return nil
}

type rawConfig struct {
	Server  *rawServer  `toml:"server"`
	Storage *rawStorage `toml:"storage"`
	Auth    *rawAuth    `toml:"auth"`
	SMS     *rawSMS     `toml:"sms"`
	Logging *rawLogging `toml:"logging"`
}

type rawServer struct {
	Addr *string `toml:"addr"`
}

type rawStorage struct {
	Path *string `toml:"path"`
}

type rawAuth struct {
	JWTSecret  *string `toml:"jwt_secret"`
	SessionTTL *string `toml:"session_ttl"`
}

type rawSMS struct {
	Mode       *string `toml:"mode"`
	WebhookURL *string `toml:"webhook_url"`
	Timeout    *string `toml:"timeout"`
}

type rawLogging struct {
	Level     *string `toml:"level"`
	File      *string `toml:"file"`
	MaxSizeMB *int    `toml:"max_size_mb"`
	MaxFiles  *int    `toml:"max_files"`
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}
	return applyRawConfig(cfg, raw)
}

func applyRawConfig(cfg *Config, raw rawConfig) error {
	if raw.Server != nil {
		setString(raw.Server.Addr, &cfg.Server.Addr)
	}
	if raw.Storage != nil {
		setString(raw.Storage.Path, &cfg.Storage.Path)
	}
	if raw.Auth != nil {
		setString(raw.Auth.JWTSecret, &cfg.Auth.JWTSecret)
		if err := setDuration("auth.session_ttl", raw.Auth.SessionTTL, &cfg.Auth.SessionTTL); err != nil {
			return err
		}
	}
	if raw.SMS != nil {
		setString(raw.SMS.Mode, &cfg.SMS.Mode)
		setString(raw.SMS.WebhookURL, &cfg.SMS.WebhookURL)
		if err := setDuration("sms.timeout", raw.SMS.Timeout, &cfg.SMS.Timeout); err != nil {
			return err
		}
	}
	if raw.Logging != nil {
		setString(raw.Logging.Level, &cfg.Logging.Level)
		setString(raw.Logging.File, &cfg.Logging.File)
		setInt(raw.Logging.MaxSizeMB, &cfg.Logging.MaxSizeMB)
		setInt(raw.Logging.MaxFiles, &cfg.Logging.MaxFiles)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, env func(string) (string, bool)) error {
	if value, ok := env("STOCKKEEPER_ADDR"); ok {
		cfg.Server.Addr = value
	}
	if value, ok := env("STOCKKEEPER_DB_PATH"); ok {
		cfg.Storage.Path = value
	}
	if value, ok := env("STOCKKEEPER_JWT_SECRET"); ok {
		cfg.Auth.JWTSecret = value
	}
	if value, ok := env("STOCKKEEPER_SESSION_TTL"); ok {
		if err := setDuration("STOCKKEEPER_SESSION_TTL", &value, &cfg.Auth.SessionTTL); err != nil {
			return err
		}
	}
	if value, ok := env("STOCKKEEPER_SMS_MODE"); ok {
		cfg.SMS.Mode = value
	}
	if value, ok := env("STOCKKEEPER_SMS_WEBHOOK_URL"); ok {
		cfg.SMS.WebhookURL = value
	}
	if value, ok := env("STOCKKEEPER_SMS_TIMEOUT"); ok {
		if err := setDuration("STOCKKEEPER_SMS_TIMEOUT", &value, &cfg.SMS.Timeout); err != nil {
			return err
		}
	}
	if value, ok := env("LOG_LEVEL"); ok {
		cfg.Logging.Level = value
	}
	if value, ok := env("LOG_FILE"); ok {
		cfg.Logging.File = value
	}
	if value, ok := env("LOG_MAX_SIZE_MB"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse LOG_MAX_SIZE_MB: %v", ErrInvalidConfig, err)
		}
		cfg.Logging.MaxSizeMB = parsed
	}
	if value, ok := env("LOG_MAX_FILES"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse LOG_MAX_FILES: %v", ErrInvalidConfig, err)
		}
		cfg.Logging.MaxFiles = parsed
	}
	return nil
}

// readDotEnv parses the .env file without touching the process environment.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}
	return values, nil
}

// lookupEnv prefers the real (or injected) environment over .env values.
func lookupEnv(opts LoadOptions, dotenv map[string]string, key string) (string, bool) {
	if opts.Env != nil {
		if value, ok := opts.Env[key]; ok {
			return value, true
		}
	} else if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := dotenv[key]
	return value, ok
}

func setDuration(field string, raw *string, target *time.Duration) error {
	if raw == nil {
		return nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, field, err)
	}
	*target = d
	return nil
}

func setString(raw *string, target *string) {
	if raw != nil {
		*target = *raw
	}
}

func setInt(raw *int, target *int) {
	if raw != nil {
		*target = *raw
	}
}
