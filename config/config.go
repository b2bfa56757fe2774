package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/xy-planning-network/weblog"
	"gopkg.in/yaml.v3"
)

const (
	// Environment variables
	baseURLEnvVar            = "BASE_URL"
	dbMaxIdleCxnsEnvVar      = "DATABASE_MAX_IDLE_CXNS"
	dbURLEnvVar              = "DATABASE_URL"
	environmentEnvVar        = "ENVIRONMENT"
	idemRedisAddrEnvVar      = "IDEMPOTENCY_REDIS_ADDR"
	logLevelEnvVar           = "LOG_LEVEL"
	passwordEnvVar           = "ADMIN_PASSWORD"
	portEnvVar               = "PORT"
	rateLimitEnvVar          = "RATE_LIMIT"
	secretKeyEnvVar          = "SECRET_KEY"
	sentryDsnEnvVar          = "SENTRY_DSN"
	serverIdleTimeoutEnvVar  = "SERVER_IDLE_TIMEOUT"
	serverReadTimeoutEnvVar  = "SERVER_READ_TIMEOUT"
	serverWriteTimeoutEnvVar = "SERVER_WRITE_TIMEOUT"
	sessionEncryptKeyEnvVar  = "SESSION_ENCRYPTION_KEY"
	sessionMaxAgeEnvVar      = "SESSION_MAX_AGE"
	sessionRedisAddrEnvVar   = "SESSION_REDIS_ADDR"
	sessionRedisPassEnvVar   = "SESSION_REDIS_PASSWORD"
	staticDirEnvVar          = "STATIC_DIR"
	usernameEnvVar           = "ADMIN_USERNAME"

	// SettingsEnvVar names the settings file when no flag does.
	SettingsEnvVar = "WEBLOG_SETTINGS"

	// Defaults
	DefaultBaseURL            = "http://localhost:3000"
	DefaultDatabase           = "weblog.db"
	DefaultEnvironment        = weblog.Development
	DefaultLogLevel           = "INFO"
	DefaultPassword           = "default"
	DefaultPort               = ":3000"
	DefaultSecretKey          = "development_key"
	DefaultServerIdleTimeout  = 120 * time.Second
	DefaultServerReadTimeout  = 5 * time.Second
	DefaultServerWriteTimeout = 5 * time.Second
	DefaultStaticDir          = "static"
	DefaultUsername           = "admin"
)

var portRegex = regexp.MustCompile(`^:?[0-9]{1,5}$`)

// A Config holds every setting a weblog runs with.
// A Config is not changed after Load returns it.
type Config struct {
	Environment weblog.Environment `yaml:"environment"`

	Database            string `yaml:"database"`
	DatabaseMaxIdleCxns int    `yaml:"database_max_idle_cxns"`

	SecretKey string `yaml:"secret_key"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`

	BaseURL            string        `yaml:"base_url"`
	Port               string        `yaml:"port"`
	StaticDir          string        `yaml:"static_dir"`
	ServerIdleTimeout  time.Duration `yaml:"server_idle_timeout"`
	ServerReadTimeout  time.Duration `yaml:"server_read_timeout"`
	ServerWriteTimeout time.Duration `yaml:"server_write_timeout"`

	LogLevel  string `yaml:"log_level"`
	SentryDSN string `yaml:"-"`

	SessionEncryptionKey string `yaml:"session_encryption_key"`
	SessionMaxAge        int    `yaml:"session_max_age"`
	SessionRedisAddr     string `yaml:"session_redis_addr"`
	SessionRedisPassword string `yaml:"session_redis_password"`

	IdempotencyRedisAddr string `yaml:"idempotency_redis_addr"`
	RateLimit            bool   `yaml:"rate_limit"`
}

// Default returns a *Config suitable for running a weblog locally.
func Default() *Config {
	return &Config{
		Environment:        DefaultEnvironment,
		Database:           DefaultDatabase,
		SecretKey:          DefaultSecretKey,
		Username:           DefaultUsername,
		Password:           DefaultPassword,
		BaseURL:            DefaultBaseURL,
		Port:               DefaultPort,
		StaticDir:          DefaultStaticDir,
		ServerIdleTimeout:  DefaultServerIdleTimeout,
		ServerReadTimeout:  DefaultServerReadTimeout,
		ServerWriteTimeout: DefaultServerWriteTimeout,
		LogLevel:           DefaultLogLevel,
	}
}

// Load builds a *Config from the defaults, the YAML settings file found at path
// and then environment variables.
//
// An empty path, or one naming no file, skips the settings file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.readFile(path); err != nil {
		return nil, err
	}

	if err := cfg.readEnv(); err != nil {
		return nil, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
	}

	return cfg, nil
}

// Address returns the address the web server listens on.
func (c *Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}

	return ":" + c.Port
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required, validation.By(validEnvironment)),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.DatabaseMaxIdleCxns, validation.Min(0)),
		validation.Field(&c.SecretKey,
			validation.Required,
			validation.When(c.Environment.IsProduction(), validation.NotIn(DefaultSecretKey).Error("must be changed in production")),
		),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, is.RequestURL),
		validation.Field(&c.Port, validation.Required, validation.Match(portRegex)),
		validation.Field(&c.ServerIdleTimeout, validation.Min(0)),
		validation.Field(&c.ServerReadTimeout, validation.Min(0)),
		validation.Field(&c.ServerWriteTimeout, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.In("DEBUG", "INFO", "WARN", "ERROR", "FATAL")),
		validation.Field(&c.SessionEncryptionKey, is.Hexadecimal, validation.By(validKeyLen)),
		validation.Field(&c.SessionMaxAge, validation.Min(0)),
	)
}

// readFile unmarshals the YAML settings file at path over c.
func (c *Config) readFile(path string) error {
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: reading %s: %s", weblog.ErrBadConfig, path, err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%w: parsing %s: %s", weblog.ErrBadFormat, path, err)
	}

	return nil
}

// readEnv overrides c with whichever environment variables are set.
// Every variable that is set but does not parse is reported.
func (c *Config) readEnv() error {
	errs := make(validation.Errors)

	envVar(errs, environmentEnvVar, &c.Environment, weblog.ParseEnvironment)

	c.Database = weblog.EnvVarOrString(dbURLEnvVar, c.Database)
	envVar(errs, dbMaxIdleCxnsEnvVar, &c.DatabaseMaxIdleCxns, strconv.Atoi)

	c.SecretKey = weblog.EnvVarOrString(secretKeyEnvVar, c.SecretKey)
	c.Username = weblog.EnvVarOrString(usernameEnvVar, c.Username)
	c.Password = weblog.EnvVarOrString(passwordEnvVar, c.Password)

	c.BaseURL = weblog.EnvVarOrString(baseURLEnvVar, c.BaseURL)
	c.Port = weblog.EnvVarOrString(portEnvVar, c.Port)
	c.StaticDir = weblog.EnvVarOrString(staticDirEnvVar, c.StaticDir)
	envVar(errs, serverIdleTimeoutEnvVar, &c.ServerIdleTimeout, time.ParseDuration)
	envVar(errs, serverReadTimeoutEnvVar, &c.ServerReadTimeout, time.ParseDuration)
	envVar(errs, serverWriteTimeoutEnvVar, &c.ServerWriteTimeout, time.ParseDuration)

	c.LogLevel = weblog.EnvVarOrString(logLevelEnvVar, c.LogLevel)
	c.SentryDSN = weblog.EnvVarOrString(sentryDsnEnvVar, c.SentryDSN)

	c.SessionEncryptionKey = weblog.EnvVarOrString(sessionEncryptKeyEnvVar, c.SessionEncryptionKey)
	envVar(errs, sessionMaxAgeEnvVar, &c.SessionMaxAge, strconv.Atoi)
	c.SessionRedisAddr = weblog.EnvVarOrString(sessionRedisAddrEnvVar, c.SessionRedisAddr)
	c.SessionRedisPassword = weblog.EnvVarOrString(sessionRedisPassEnvVar, c.SessionRedisPassword)

	c.IdempotencyRedisAddr = weblog.EnvVarOrString(idemRedisAddrEnvVar, c.IdempotencyRedisAddr)
	envVar(errs, rateLimitEnvVar, &c.RateLimit, weblog.ParseBool)

	return errs.Filter()
}

// envVar sets dst from key when key is set, recording a value parse rejects in errs.
func envVar[T any](errs validation.Errors, key string, dst *T, parse func(string) (T, error)) {
	val, ok, err := weblog.LookupEnvVar(key, parse)
	switch {
	case err != nil:
		errs[key] = err
	case ok:
		*dst = val
	}
}

// normalize upper cases the values matched case-insensitively.
func (c *Config) normalize() {
	c.Environment = weblog.Environment(strings.ToUpper(string(c.Environment)))
	c.LogLevel = strings.ToUpper(c.LogLevel)
}

func validEnvironment(val any) error {
	env, ok := val.(weblog.Enumerable)
	if !ok {
		return fmt.Errorf("%T is not enumerable", val)
	}

	if err := env.Valid(); err != nil {
		return fmt.Errorf("%q is not an environment", env)
	}

	return nil
}

func validKeyLen(val any) error {
	key, _ := val.(string)
	if key == "" {
		return nil
	}

	b, err := hex.DecodeString(key)
	if err != nil {
		return nil
	}

	switch len(b) {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("must decode to 16, 24 or 32 bytes, not %d", len(b))
	}
}
