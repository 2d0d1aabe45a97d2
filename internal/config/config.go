package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Postgres  PostgresConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Shortener ShortenerConfig
	Auth      AuthConfig
	OTel      OTelConfig
}

type AppConfig struct {
	Name     string
	Version  string
	Env      string
	LogLevel string
}

type ServerConfig struct {
	Port string
	Host string
}

type PostgresConfig struct {
	DSN string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers    []string
	ClickTopic string
}

type ShortenerConfig struct {
	BaseURL        string
	TokenLength    int
	RedirectStatus int // 301 or 302
	LinksBackend   string // postgres or mongo
	QuotaWindow    time.Duration
	QuotaTimeout   time.Duration
	DefaultTier    string
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		App: AppConfig{
			Name:     GetEnv("APP_NAME", "shortly"),
			Version:  GetEnv("APP_VERSION", "0.1.0"),
			Env:      GetEnv("APP_ENV", "development"),
			LogLevel: GetEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: GetEnv("APP_PORT", "8080"),
			Host: GetEnv("APP_HOST", "localhost"),
		},
		Postgres: PostgresConfig{
			DSN: GetEnv("POSTGRES_DSN", DefaultPostgresDSN()),
		},
		MongoDB: MongoDBConfig{
			URI:      GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: GetEnv("MONGODB_DATABASE", "shortly"),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", "localhost:6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:    SplitCSV(GetEnv("KAFKA_BROKERS", "localhost:9092")),
			ClickTopic: GetEnv("KAFKA_CLICK_TOPIC", "shortly.clicks"),
		},
		Shortener: ShortenerConfig{
			BaseURL:        GetEnv("SHORTENER_BASE_URL", "http://localhost:8080"),
			TokenLength:    GetEnvInt("TOKEN_LENGTH", 6),
			RedirectStatus: GetEnvInt("REDIRECT_STATUS", 302),
			LinksBackend:   GetEnv("LINKS_BACKEND", "postgres"),
			QuotaWindow:    GetEnvDuration("QUOTA_WINDOW", 24*time.Hour),
			QuotaTimeout:   GetEnvDuration("QUOTA_TIMEOUT", 2*time.Second),
			DefaultTier:    GetEnv("DEFAULT_TIER", "free"),
		},
		Auth: AuthConfig{
			JWTSecret: GetEnv("JWT_SECRET", ""),
			JWTIssuer: GetEnv("JWT_ISSUER", "shortly"),
			JWTTTL:    GetEnvDuration("JWT_TTL", 24*time.Hour),
		},
		OTel: OTelConfig{
			Enabled:  GetEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
	}

	if cfg.Shortener.RedirectStatus != 301 && cfg.Shortener.RedirectStatus != 302 {
		return nil, fmt.Errorf("REDIRECT_STATUS must be 301 or 302 (got %d)", cfg.Shortener.RedirectStatus)
	}
	if cfg.Shortener.TokenLength < 4 || cfg.Shortener.TokenLength > 32 {
		return nil, fmt.Errorf("TOKEN_LENGTH must be between 4 and 32 (got %d)", cfg.Shortener.TokenLength)
	}
	if cfg.Shortener.LinksBackend != "postgres" && cfg.Shortener.LinksBackend != "mongo" {
		return nil, fmt.Errorf("LINKS_BACKEND must be postgres or mongo (got %q)", cfg.Shortener.LinksBackend)
	}
	if cfg.Shortener.QuotaWindow <= 0 {
		return nil, fmt.Errorf("QUOTA_WINDOW must be positive (got %s)", cfg.Shortener.QuotaWindow)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
