package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxPoolConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type AuthConfig struct {
	BcryptCost int
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	dbCfg, err := newDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config error: %w", err)
	}

	redisCfg, err := newRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("redis config error: %w", err)
	}

	sessionCfg, err := newSessionConfig()
	if err != nil {
		return nil, fmt.Errorf("session config error: %w", err)
	}

	authCfg, err := newAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config error: %w", err)
	}

	return &Config{
		Server:   serverCfg,
		Database: dbCfg,
		Redis:    redisCfg,
		Session:  sessionCfg,
		Auth:     authCfg,
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newDatabaseConfig() (DatabaseConfig, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("MAX_CONNS", "20"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("max connections parse error: %w", err)
	}

	return DatabaseConfig{
		Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
		Name:         getEnvOrDefault("POSTGRES_DB", "tripwell"),
		User:         getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password:     getEnvOrDefault("POSTGRES_PASSWORD", ""),
		MaxPoolConns: maxConns,
	}, nil
}

func newRedisConfig() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("redis db parse error: %w", err)
	}

	return RedisConfig{
		Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       db,
	}, nil
}

func newSessionConfig() (SessionConfig, error) {
	ttl, err := getDurationFromEnv("SESSION_TTL", "24h")
	if err != nil {
		return SessionConfig{}, fmt.Errorf("session ttl parse error: %w", err)
	}

	secure, err := strconv.ParseBool(getEnvOrDefault("SESSION_COOKIE_SECURE", "false"))
	if err != nil {
		return SessionConfig{}, fmt.Errorf("session cookie secure parse error: %w", err)
	}

	return SessionConfig{
		CookieName: getEnvOrDefault("SESSION_COOKIE_NAME", "tripwell_session"),
		TTL:        ttl,
		Secure:     secure,
	}, nil
}

func newAuthConfig() (AuthConfig, error) {
	cost, err := strconv.Atoi(getEnvOrDefault("BCRYPT_COST", "10"))
	if err != nil {
		return AuthConfig{}, fmt.Errorf("bcrypt cost parse error: %w", err)
	}
	return AuthConfig{BcryptCost: cost}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
