package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DevSessionSecret is only accepted outside production.
const DevSessionSecret = "dev-secret-key"

// ErrMissingSecret is returned when production starts without a signing secret.
var ErrMissingSecret = errors.New("SECRET_KEY must be set to a non-default value in production")

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Hashing  HashingConfig
	Login    LoginConfig
	Log      LogConfig
	Metrics  MetricsConfig
	CORS     CORSConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls the signed user_data cookie.
type SessionConfig struct {
	Secret       string
	MaxAge       time.Duration
	CookieSecure bool
	// UsingDefault reports that the development fallback secret is in use.
	UsingDefault bool
}

// HashingConfig bounds concurrent Argon2 computations.
type HashingConfig struct {
	MaxConcurrency int
}

// LoginConfig configures failed-login throttling. Throttling requires Redis.
type LoginConfig struct {
	MaxAttempts   int
	AttemptWindow time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Enabled bool
}

// CORSConfig applies to the JSON diagnostics endpoints only.
type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("MYSQL_HOST"),
		Port:         v.GetInt("MYSQL_PORT"),
		User:         v.GetString("MYSQL_USER"),
		Password:     v.GetString("MYSQL_PASSWORD"),
		Name:         v.GetString("MYSQL_DB"),
		MaxOpenConns: v.GetInt("MYSQL_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("MYSQL_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	secret := strings.TrimSpace(v.GetString("SECRET_KEY"))
	if cfg.Env == EnvProduction && (secret == "" || secret == DevSessionSecret) {
		return nil, ErrMissingSecret
	}
	usingDefault := false
	if secret == "" {
		secret = DevSessionSecret
		usingDefault = true
	}
	cfg.Session = SessionConfig{
		Secret:       secret,
		MaxAge:       parseDuration(v.GetString("SESSION_MAX_AGE"), 24*time.Hour),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		UsingDefault: usingDefault,
	}

	concurrency := v.GetInt("HASH_MAX_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = 4
	}
	cfg.Hashing = HashingConfig{MaxConcurrency: concurrency}

	cfg.Login = LoginConfig{
		MaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
		AttemptWindow: parseDuration(v.GetString("LOGIN_ATTEMPT_WINDOW"), 15*time.Minute),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}
	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("DIAGNOSTICS_ALLOWED_ORIGINS"))}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)

	v.SetDefault("MYSQL_HOST", "localhost")
	v.SetDefault("MYSQL_PORT", 3306)
	v.SetDefault("MYSQL_USER", "root")
	v.SetDefault("MYSQL_PASSWORD", "")
	v.SetDefault("MYSQL_DB", "requetes_universitaires")
	v.SetDefault("MYSQL_MAX_OPEN_CONNS", 10)
	v.SetDefault("MYSQL_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("SESSION_MAX_AGE", "24h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("HASH_MAX_CONCURRENCY", 4)

	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_ATTEMPT_WINDOW", "15m")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("DIAGNOSTICS_ALLOWED_ORIGINS", "")
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
