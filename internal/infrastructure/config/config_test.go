package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_URL": "postgres://crm@localhost:5432/crm",
		"STORE_KEY": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.Store.Driver)
	}
	if cfg.Session.TTL != 8*time.Hour || cfg.Session.CookieName != "crm_session" {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
}

func TestLoad_MissingStoreSettingsFails(t *testing.T) {
	cases := map[string]map[string]string{
		"no url": {"STORE_KEY": "s3cret"},
		"no key": {"STORE_URL": "postgres://localhost/crm"},
		"none":   {},
	}
	for name, env := range cases {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_URL":    "sqlite://crm.db",
		"STORE_KEY":    "s3cret",
		"STORE_DRIVER": "sqlite",
	}))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_URL":      "mongodb://localhost:27017",
		"STORE_KEY":      "s3cret",
		"STORE_DRIVER":   "mongo",
		"MONGO_DB":       "crm_test",
		"SESSION_TTL":    "30m",
		"SESSION_COOKIE": "sid",
		"COOKIE_SECURE":  "true",
		"REDIS_ADDR":     "redis:6379",
		"REDIS_PASSWORD": "pw",
		"REDIS_DB":       "2",
		"ENV":            "production",
	}))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Store.Driver != DriverMongo || cfg.Store.Database != "crm_test" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Session.TTL != 30*time.Minute || cfg.Session.CookieName != "sid" || !cfg.Session.CookieSecure {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.Password != "pw" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("production must not report development")
	}
}
