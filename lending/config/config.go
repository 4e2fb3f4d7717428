package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/lending-service/pkg/kafka"
	"github.com/Astemirdum/lending-service/pkg/logger"
	"github.com/Astemirdum/lending-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LENDING_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LENDING_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

type Lending struct {
	// Storage selects the store driver: postgres or memory.
	Storage         string `envconfig:"LENDING_STORAGE" default:"postgres"`
	SeedFile        string `envconfig:"LENDING_SEED_FILE"`
	DefaultLoanDays int    `envconfig:"LENDING_DEFAULT_LOAN_DAYS" default:"14"`

	LoanFormat       string `envconfig:"LENDING_LOAN_FORMAT" default:"{number}/{year}"`
	CatalogFormat    string `envconfig:"LENDING_CATALOG_FORMAT" default:"{number}/{year}"`
	MembershipFormat string `envconfig:"LENDING_MEMBERSHIP_FORMAT" default:"M-{number}/{year}"`

	AuditRetentionDays int `envconfig:"LENDING_AUDIT_RETENTION_DAYS" default:"365"`
}

type Config struct {
	Server   HTTPServer  `yaml:"server"`
	Database postgres.DB `yaml:"db"`
	Kafka    kafka.Config
	Log      logger.Log `yaml:"log"`
	Lending  Lending
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment. Options override what the environment sets.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		if err := config.validate(); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func (c *Config) validate() error {
	switch c.Lending.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Lending.Storage)
	}
	if c.Lending.DefaultLoanDays <= 0 {
		return fmt.Errorf("default loan days must be positive, got %d", c.Lending.DefaultLoanDays)
	}
	return nil
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
