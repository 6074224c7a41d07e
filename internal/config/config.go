package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"loan-portal/internal/infrastructure/frappe"
)

type Config struct {
	AppPort  string
	LogLevel string

	FrappeURL         string
	FrappeAPIKey      string
	FrappeAPISecret   string
	FrappeAccessToken string
	FrappeTimeout     time.Duration

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// UploadLedgerEnabled turns on the MySQL upload ledger.
	UploadLedgerEnabled bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads the environment. Files are loaded first when given (or .env
// when none are); missing files are ignored and never override variables
// that are already set.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		FrappeURL:         getenv("FRAPPE_URL", "http://localhost:8000"),
		FrappeAPIKey:      os.Getenv("FRAPPE_API_KEY"),
		FrappeAPISecret:   os.Getenv("FRAPPE_API_SECRET"),
		FrappeAccessToken: os.Getenv("FRAPPE_ACCESS_TOKEN"),
		FrappeTimeout:     time.Duration(getint("FRAPPE_TIMEOUT_SECONDS", 30)) * time.Second,

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loan_portal"),
		MySQLUser: getenv("MYSQL_USER", "loan_portal"),
		MySQLPass: getenv("MYSQL_PASS", "loan_portal"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		UploadLedgerEnabled: getbool("UPLOAD_LEDGER_ENABLED", false),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}

	u, err := url.Parse(c.FrappeURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid FRAPPE_URL %q", c.FrappeURL)
	}
	if (c.FrappeAPIKey == "") != (c.FrappeAPISecret == "") && c.FrappeAccessToken == "" {
		return errors.New("FRAPPE_API_KEY and FRAPPE_API_SECRET must be set together")
	}
	if c.FrappeTimeout <= 0 {
		return errors.New("FRAPPE_TIMEOUT_SECONDS must be positive")
	}

	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}

	if c.UploadLedgerEnabled {
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	}
	return nil
}

// Frappe returns the document client settings.
func (c *Config) Frappe() frappe.Config {
	return frappe.Config{
		BaseURL:     c.FrappeURL,
		APIKey:      c.FrappeAPIKey,
		APISecret:   c.FrappeAPISecret,
		AccessToken: c.FrappeAccessToken,
		Timeout:     c.FrappeTimeout,
	}
}

// HasAPICredentials reports whether both halves of the API key pair are set.
func (c *Config) HasAPICredentials() bool {
	return c.FrappeAPIKey != "" && c.FrappeAPISecret != ""
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime is needed for DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
