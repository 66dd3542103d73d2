package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"

	StoreMemory = "memory"
	StoreMongo  = "mongo"

	minSecretLength = 32
)

type Config struct {
	App      AppConfig      `env-prefix:"APP_"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_"`
	JWT      JWTConfig      `env-prefix:"JWT_"`
	Store    StoreConfig    `env-prefix:"STORE_"`
	Mongo    MongoConfig    `env-prefix:"MONGO_"`
	Redis    RedisConfig    `env-prefix:"REDIS_"`
	Metadata MetadataConfig `env-prefix:"METADATA_"`
}

type AppConfig struct {
	Env      string `env:"ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"LOG_PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr            string        `env:"ADDR" env-default:":5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type JWTConfig struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" env-default:"720h"`
	Issuer string        `env:"ISSUER" env-default:"notemark"`
}

type StoreConfig struct {
	Driver string `env:"DRIVER" env-default:"memory"`
}

type MongoConfig struct {
	URI            string        `env:"URI" env-default:"mongodb://localhost:27017"`
	Database       string        `env:"DB" env-default:"notemark"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" env-default:"10s"`
	MaxPoolSize    uint64        `env:"MAX_POOL_SIZE" env-default:"100"`
}

type RedisConfig struct {
	URL      string        `env:"URL"`
	TitleTTL time.Duration `env:"TITLE_TTL" env-default:"24h"`
}

type MetadataConfig struct {
	Timeout   time.Duration `env:"TIMEOUT" env-default:"5s"`
	UserAgent string        `env:"USER_AGENT" env-default:"Mozilla/5.0 (compatible; NotesBookmarksBot/1.0)"`
	MaxBody   int64         `env:"MAX_BODY" env-default:"2097152"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate cfg: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	switch c.Store.Driver {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Metadata.Timeout <= 0 {
		return errors.New("METADATA_TIMEOUT must be positive")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}
