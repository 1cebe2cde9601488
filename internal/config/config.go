package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const configPathEnv = "ESCROW_CONFIG_PATH"

type EscrowConfig struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	EscrowDB     `yaml:"escrow_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka_service"`
	Auth         `yaml:"auth"`
	RateLimit    `yaml:"rate_limit"`
	Trust        `yaml:"trust"`
	Expiry       `yaml:"expiry"`
}

type HTTPServer struct {
	Host           string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port           string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env-default:"10s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"*"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type EscrowDB struct {
	Dsn            string `yaml:"dsn" env:"ESCROW_DB_DSN" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"ESCROW_MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	// LogOutput is "stdout" or a file path rotated by lumberjack.
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled    bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers    []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	TradeTopic string   `yaml:"trade_topic" env-default:"trade.events"`
	TrustTopic string   `yaml:"trust_topic" env-default:"trust.recompute"`
	GroupID    string   `yaml:"group_id" env-default:"escrow-service"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
}

type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"20"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

type Trust struct {
	// Async moves trust recomputation onto the Kafka queue.
	Async bool `yaml:"async" env:"TRUST_ASYNC" env-default:"false"`
}

type Expiry struct {
	Enabled   bool          `yaml:"enabled" env:"EXPIRY_ENABLED"`
	Interval  time.Duration `yaml:"interval" env:"EXPIRY_INTERVAL" env-default:"1m"`
	BatchSize int           `yaml:"batch_size" env-default:"100"`
}

// Load reads the YAML file at path and applies env overrides.
func Load(path string) (*EscrowConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty, set %s or --config", configPathEnv)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return &cfg, nil
}

// MustLoad uses path, falling back to ESCROW_CONFIG_PATH, and exits on failure.
func MustLoad(path string) *EscrowConfig {
	if path == "" {
		path = os.Getenv(configPathEnv)
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
