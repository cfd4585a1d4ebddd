package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("host: expected 'localhost', got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("port: expected 5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.DBName != "pereval" {
		t.Errorf("dbname: expected 'pereval', got %q", cfg.Database.DBName)
	}
	if cfg.Database.User != "postgres" {
		t.Errorf("user: expected 'postgres', got %q", cfg.Database.User)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FSTR_DB_HOST", "db.example.com")
	t.Setenv("FSTR_DB_PORT", "6432")
	t.Setenv("FSTR_DB_NAME", "passes")
	t.Setenv("FSTR_DB_LOGIN", "app")
	t.Setenv("FSTR_DB_PASS", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Host != "db.example.com" {
		t.Errorf("host: expected 'db.example.com', got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 6432 {
		t.Errorf("port: expected 6432, got %d", cfg.Database.Port)
	}
	if cfg.Database.DBName != "passes" {
		t.Errorf("dbname: expected 'passes', got %q", cfg.Database.DBName)
	}
	if cfg.Database.User != "app" {
		t.Errorf("user: expected 'app', got %q", cfg.Database.User)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("password: expected 'secret', got %q", cfg.Database.Password)
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		DBName:  "pereval",
		SSLMode: "disable",
	}

	want := "host=localhost port=5432 user=postgres dbname=pereval sslmode=disable"
	if got := db.DSN(); got != want {
		t.Errorf("DSN: expected %q, got %q", want, got)
	}

	db.Password = "secret"
	if got := db.DSN(); got != want+" password=secret" {
		t.Errorf("DSN with password: got %q", got)
	}
}
