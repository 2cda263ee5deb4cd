package config

import (
	"os"
	"testing"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/claims")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBSchema != "claims" {
		t.Errorf("expected default schema claims, got %s", cfg.DBSchema)
	}
	if cfg.StorageBackend != "memory" {
		t.Errorf("expected default storage backend memory, got %s", cfg.StorageBackend)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestValidate_StorageBackend(t *testing.T) {
	cfg := &Config{Env: "development", StorageBackend: "ftp", SignedURLTTL: 900}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown storage backend")
	}

	cfg = &Config{Env: "development", StorageBackend: "s3", SignedURLTTL: 900}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for s3 backend without bucket")
	}

	cfg = &Config{Env: "development", StorageBackend: "s3", StorageBucket: "claims-docs", SignedURLTTL: 900}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ProductionRejectsMemoryStorage(t *testing.T) {
	cfg := &Config{Env: "production", StorageBackend: "memory", SignedURLTTL: 900}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for memory storage in production")
	}
}

func TestValidate_PrivateBucketNeedsTTL(t *testing.T) {
	cfg := &Config{Env: "development", StorageBackend: "s3", StorageBucket: "b", StoragePublic: false, SignedURLTTL: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for private bucket with zero TTL")
	}
}
