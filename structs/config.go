package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Metrics  *MetricsConfig
	Demo     *DemoConfig
	Database *DatabaseConfig
	Cache    *CacheConfig
}

type ServerConfig struct {
	AppName         string        // metrics_demo_server
	Environment     string        // development, production
	Port            string        // :8000
	LogLevel        string        // debug, info, warn, error
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int   // in bytes
	MaxBodyBytes    int64 // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type MetricsConfig struct {
	RuntimeCollectors bool // go_* and process_* families
}

type DemoConfig struct {
	SlowDelay time.Duration
}

type DatabaseConfig struct {
	Enabled     bool
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	DialTimeout time.Duration
}

type CacheConfig struct {
	Enabled      bool
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxRetries   int
}
