package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// Backends selectable with STORE_BACKEND.
const (
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendSQL   = "sql"
)

type Config struct {
	Port         string        `env:"PORT,          default=8080"`
	Env          string        `env:"ENV,           default=development"`
	JWTSecret    string        `env:"JWT_SECRET,    default=change-me"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=24h"`
	RequireToken bool          `env:"REQUIRE_TOKEN, default=false"`
	LogLevel     string        `env:"LOG_LEVEL,     default=info"`
	LogPretty    bool          `env:"LOG_PRETTY,    default=false"`
	StoreBackend string        `env:"STORE_BACKEND, default=redis"`

	Mongo     MongoConfig
	Redis     RedisConfig
	SQL       SQLConfig
	AMQP      AMQPConfig
	Throttle  ThrottleConfig
	Guardians GuardianConfig
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,       default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,        default=custody_calendar"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL,  default=20"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLConfig struct {
	Driver   string `env:"SQL_DRIVER,    default=sqlite"`
	DSN      string `env:"SQL_DSN,       default=custody.db"`
	MaxConns int    `env:"SQL_MAX_CONNS, default=10"`
}

// AMQPConfig enables document-saved notifications when URL is set.
type AMQPConfig struct {
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE, default=custody.document.saved"`
}

type ThrottleConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Lockout     time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

type GuardianConfig struct {
	AName string `env:"GUARDIAN_A_NAME, default=Guardian A"`
	BName string `env:"GUARDIAN_B_NAME, default=Guardian B"`
}

func (g GuardianConfig) Names() domain.Names {
	return domain.Names{A: g.AName, B: g.BName}
}

// ClientConfig configures the custodyctl terminal client.
type ClientConfig struct {
	Server      string        `env:"CUSTODY_SERVER,       default=http://localhost:8080"`
	Debounce    time.Duration `env:"CUSTODY_DEBOUNCE,     default=1s"`
	SaveWorkers int           `env:"CUSTODY_SAVE_WORKERS, default=2"`
	Timeout     time.Duration `env:"CUSTODY_TIMEOUT,      default=10s"`
	LogLevel    string        `env:"LOG_LEVEL,            default=warn"`

	Guardians GuardianConfig
}

// Load reads a .env file if present, then the environment, using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := load(&cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	switch cfg.StoreBackend {
	case BackendRedis, BackendMongo, BackendSQL:
	default:
		panic(fmt.Sprintf("config: unknown STORE_BACKEND %q", cfg.StoreBackend))
	}
	return &cfg
}

// LoadClient is Load for the terminal client.
func LoadClient() *ClientConfig {
	var cfg ClientConfig
	if err := load(&cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load client configuration: %v", err))
	}
	return &cfg
}

func load(target any) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	return envconfig.Process(context.Background(), target)
}
