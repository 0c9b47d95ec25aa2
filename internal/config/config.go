package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	Environment string
	LogLevel    string

	DBDriver   string // sqlite | mysql
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	LeaseTTLSecs int
	IdempTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	return &Config{
		AppPort:     getenv("APP_PORT", "8080"),
		Environment: getenv("APP_ENV", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBDriver:   getenv("DB_DRIVER", "sqlite"),
		SQLitePath: getenv("SQLITE_PATH", "licitaciones.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "licitaciones"),
		MySQLUser: getenv("MYSQL_USER", "licitaciones"),
		MySQLPass: getenv("MYSQL_PASS", "licitaciones"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		LeaseTTLSecs: getenvInt("LEASE_TTL_SECONDS", 120),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.LeaseTTLSecs <= 0 {
		return errors.New("LEASE_TTL_SECONDS must be positive")
	}
	return nil
}

// DSN returns the driver-appropriate connection string.
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		// parseTime needed for DATETIME columns
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
			c.MySQLUser, c.MySQLPass, net.JoinHostPort(c.MySQLHost, c.MySQLPort), c.MySQLDB)
	}
	return c.SQLitePath
}
