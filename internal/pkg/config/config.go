package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
	PostgresDB PostgresDB `yaml:"db"`
	Auth       Auth       `yaml:"auth"`
	Sessions   Sessions   `yaml:"rdb"`
}

type Server struct {
	Addr         string        `env-default:":8080" yaml:"addr"`
	ReadTimeout  time.Duration `env-default:"5s"    yaml:"readTimeout"`
	IdleTimeout  time.Duration `env-default:"60s"   yaml:"idleTimeout"`
	WriteTimeout time.Duration `env-default:"10s"   yaml:"writeTimeout"`
}

type Logger struct {
	Level     string   `env-default:"info" yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
}

type PostgresDB struct {
	Storage  string `env:"STORAGE"           env-default:"postgres" yaml:"storage"`
	Addr     string `yaml:"addr"`
	Username string `env:"POSTGRES_USER"     yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	DB       string `env:"POSTGRES_DB"       yaml:"db"`
	SSLmode  string `env-default:"disable"   yaml:"sslmode"`
	MaxConns string `env-default:"10"        yaml:"maxConns"`
	Reload   bool   `yaml:"reload"`
	Version  int    `yaml:"version"`
}

type Auth struct {
	TTL          time.Duration `env-default:"24h"                yaml:"ttl"`
	Secret       string        `env:"SECRET" env-required:"true" yaml:"secret"`
	BcryptCost   int           `env-default:"12"                 yaml:"bcryptCost"`
	SecureCookie bool          `yaml:"secureCookie"`
}

type Sessions struct {
	Addr     string `yaml:"addr"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `yaml:"db"`
}

func New(configPath string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config error: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.PostgresDB.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.PostgresDB.Username == "" || c.PostgresDB.DB == "" {
			return fmt.Errorf("postgres storage requires db username and db name") //nolint:perfsprint
		}
	default:
		return fmt.Errorf("unknown storage %q", c.PostgresDB.Storage)
	}

	if c.Auth.TTL <= 0 {
		return fmt.Errorf("auth ttl must be positive, got %s", c.Auth.TTL)
	}

	return nil
}

// ConnString is the pgxpool connection string, including pool settings.
func (p PostgresDB) ConnString() string {
	return p.MigrationConnString() + "?" + "sslmode=" + p.SSLmode + "&pool_max_conns=" + p.MaxConns
}

func (p PostgresDB) MigrationConnString() string {
	return "postgres://" + p.Username + ":" + p.Password + "@" + p.Addr + "/" + p.DB
}
