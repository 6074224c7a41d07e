package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"loan-portal/internal/infrastructure/frappe"
)

var keys = []string{
	"APP_PORT", "LOG_LEVEL", "FRAPPE_URL", "FRAPPE_API_KEY", "FRAPPE_API_SECRET", "FRAPPE_ACCESS_TOKEN",
	"FRAPPE_TIMEOUT_SECONDS", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER", "MYSQL_PASS",
	"REDIS_ADDR", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS", "UPLOAD_LEDGER_ENABLED",
}

// clearEnv blanks every key for the test; getenv treats "" as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func noFile(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.env") }

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c := Load(noFile(t))

	if c.AppPort != "8080" || c.LogLevel != "info" {
		t.Fatalf("app defaults: %+v", c)
	}
	if c.FrappeTimeout != 30*time.Second {
		t.Fatalf("timeout: %v", c.FrappeTimeout)
	}
	if c.IdempTTLSecs != 300 || c.IdempotencyTTL() != 5*time.Minute {
		t.Fatalf("ttl: %d", c.IdempTTLSecs)
	}
	if c.UploadLedgerEnabled {
		t.Fatalf("ledger should default off")
	}
	if c.Frappe().Mode() != frappe.AuthSession {
		t.Fatalf("mode: %v", c.Frappe().Mode())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate defaults: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FRAPPE_URL", "https://erp.example.com")
	t.Setenv("FRAPPE_API_KEY", "k")
	t.Setenv("FRAPPE_API_SECRET", "s")
	t.Setenv("FRAPPE_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("UPLOAD_LEDGER_ENABLED", "true")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "not-a-number")

	c := Load(noFile(t))
	if !c.HasAPICredentials() || c.Frappe().Mode() != frappe.AuthToken {
		t.Fatalf("credentials: %+v", c)
	}
	if c.FrappeTimeout != 5*time.Second || c.RedisDB != 3 || !c.UploadLedgerEnabled {
		t.Fatalf("parsed values: %+v", c)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("bad int should fall back to default, got %d", c.IdempTTLSecs)
	}
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("FRAPPE_API_KEY")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("APP_PORT", "9000")

	f := filepath.Join(t.TempDir(), "test.env")
	body := "APP_PORT=7000\nFRAPPE_API_KEY=from-file\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(f, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("FRAPPE_API_KEY")
		os.Unsetenv("LOG_LEVEL")
	})

	c := Load(f)
	if c.AppPort != "9000" {
		t.Fatalf("existing env must win, got %q", c.AppPort)
	}
	if c.FrappeAPIKey != "from-file" || c.LogLevel != "debug" {
		t.Fatalf("file values not loaded: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	missing := noFile(t)
	base := func() *Config { return Load(missing) }
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad url", func(c *Config) { c.FrappeURL = "not a url" }, "FRAPPE_URL"},
		{"half credentials", func(c *Config) { c.FrappeAPIKey = "k" }, "set together"},
		{"bearer ok", func(c *Config) { c.FrappeAPIKey = "k"; c.FrappeAccessToken = "t" }, ""},
		{"bad port", func(c *Config) { c.AppPort = "http-ish-nonsense" }, "APP_PORT"},
		{"zero ttl", func(c *Config) { c.IdempTTLSecs = 0 }, "IDEMPOTENCY_TTL_SECONDS"},
		{"zero timeout", func(c *Config) { c.FrappeTimeout = 0 }, "FRAPPE_TIMEOUT_SECONDS"},
		{"ledger needs mysql", func(c *Config) { c.UploadLedgerEnabled = true; c.MySQLHost = "" }, "MySQL"},
		{"mysql ignored when ledger off", func(c *Config) { c.MySQLHost = "" }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("want nil, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLHost: "db", MySQLPort: "3306", MySQLDB: "lp", MySQLUser: "u", MySQLPass: "p"}
	want := "u:p@tcp(db:3306)/lp?parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("dsn: got %q want %q", got, want)
	}
}
