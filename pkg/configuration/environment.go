package configuration

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/relations/pkg/logging"
)

const Production = "production"

var (
	mu        sync.Mutex
	singleton *Configuration
)

type DatabaseOptions struct {
	Name     string `env:"DB_NAME" envDefault:"relations"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type Configuration struct {
	Database DatabaseOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`

	// MaxHierarchyDepth bounds the parent-chain walk in both the
	// organization and reporting hierarchies.
	MaxHierarchyDepth int `env:"RELATIONS_MAX_DEPTH" envDefault:"32"`

	logger *logrus.Logger
}

// Use returns the process-wide configuration, loading it on first call.
func Use() *Configuration {
	mu.Lock()
	defer mu.Unlock()
	if singleton == nil {
		c := &Configuration{}
		if err := c.load([]string{".env", ".env.local"}); err != nil {
			panic(err)
		}
		singleton = c
	}
	return singleton
}

// Unload drops the singleton so tests can reload with a fresh environment.
func Unload() {
	mu.Lock()
	defer mu.Unlock()
	singleton = nil
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	c.logger = logging.ConsoleLogger(level)
	return nil
}

func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}
