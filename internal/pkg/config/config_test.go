package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.StorageDriver != DriverMongo {
		t.Fatalf("expected mongo driver, got %q", cfg.StorageDriver)
	}
	if cfg.Session.TTL != 336*time.Hour {
		t.Fatalf("expected 336h session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Site.AppName != "E-Commerce App" {
		t.Fatalf("unexpected app name %q", cfg.Site.AppName)
	}
	if cfg.Mongo.Database != "product_catalog" {
		t.Fatalf("unexpected mongo database %q", cfg.Mongo.Database)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
		"SESSION_TTL":    "2h",
		"STORAGE_DRIVER": "postgres",
		"POSTGRES_DSN":   "postgres://db/catalog",
		"COOKIE_SECURE":  "true",
		"ENV":            "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StorageDriver != DriverPostgres || cfg.Postgres.DSN != "postgres://db/catalog" {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
	if cfg.Session.TTL != 2*time.Hour || !cfg.Session.CookieSecure {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when SESSION_SECRET is missing")
	}
}

func TestLoadWith_UnknownDriver(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
		"STORAGE_DRIVER": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
