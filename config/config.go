package config

import (
	"metrics_demo_server/structs"
	"strings"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

// GetConfig returns the process-wide configuration, read from the
// environment on first use.
func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load reads a fresh configuration from the environment.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:         getEnvAsString("APP_NAME", "metrics_demo_server"),
			Environment:     getEnvAsString("APP_ENV", "development"),
			Port:            getEnvAsString("APP_PORT", ":8000"),
			LogLevel:        getEnvAsString("LOG_LEVEL", ""),
			ReadTimeout:     getEnvAsTimeDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsTimeDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxHeaderBytes:  getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			MaxBodyBytes:    getEnvAsInt64("SERVER_MAX_BODY_BYTES", 1<<20),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:9090"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Metrics: &structs.MetricsConfig{
			RuntimeCollectors: getEnvAsBool("METRICS_RUNTIME_COLLECTORS", false),
		},
		Demo: &structs.DemoConfig{
			SlowDelay: getEnvAsTimeDuration("DEMO_SLOW_DELAY", time.Second),
		},
		Database: &structs.DatabaseConfig{
			Enabled:     getEnvAsBool("DB_ENABLED", false),
			Host:        getEnvAsString("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnvAsString("DB_USER", "postgres"),
			Password:    getEnvAsString("DB_PASSWORD", "password"),
			Name:        getEnvAsString("DB_NAME", "postgres"),
			SSLMode:     getEnvAsString("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 4),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 1),
			MaxLifetime: getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime: getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			DialTimeout: getEnvAsTimeDuration("DB_DIAL_TIMEOUT", 5*time.Second),
		},
		Cache: &structs.CacheConfig{
			Enabled:      getEnvAsBool("CACHE_ENABLED", false),
			Address:      getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
			Username:     getEnvAsString("CACHE_USERNAME", ""),
			Password:     getEnvAsString("CACHE_PASSWORD", ""),
			DB:           getEnvAsInt("CACHE_DB", 0),
			PoolSize:     getEnvAsInt("CACHE_POOL_SIZE", 4),
			DialTimeout:  getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:   getEnvAsInt("CACHE_MAX_RETRIES", 2),
		},
	}
}

// LogLevel returns the explicit LOG_LEVEL when set, otherwise a level
// derived from the environment.
func LogLevel(cfg *structs.Config) string {
	if level := strings.TrimSpace(cfg.Server.LogLevel); level != "" {
		return strings.ToLower(level)
	}
	if IsProduction(cfg) {
		return "info"
	}
	return "debug"
}

func IsProduction(cfg *structs.Config) bool {
	return cfg.Server.Environment == "production"
}
