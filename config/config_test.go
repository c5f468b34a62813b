package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	keys := []string{"MONGODB_URI", "MONGODB_DB_NAME", "MONGODB_COLLECTION_NAME", "PORT"}
	backup := map[string]string{}
	for _, k := range keys {
		backup[k] = os.Getenv(k)
	}
	t.Cleanup(func() {
		for k, v := range backup {
			_ = os.Setenv(k, v)
		}
	})

	t.Run("MissingURI", func(t *testing.T) {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
		if _, err := Load(); err == nil {
			t.Fatal("expected error when MONGODB_URI is missing, got nil")
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
		_ = os.Setenv("MONGODB_URI", "mongodb://localhost:27017")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if cfg.DBName != "network_devices" {
			t.Fatalf("expected default db name network_devices, got %q", cfg.DBName)
		}
		if cfg.CollectionName != "devices" {
			t.Fatalf("expected default collection devices, got %q", cfg.CollectionName)
		}
		if cfg.Port != "3001" {
			t.Fatalf("expected default port 3001, got %q", cfg.Port)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		_ = os.Setenv("MONGODB_URI", "mongodb://db.example:27017")
		_ = os.Setenv("MONGODB_DB_NAME", "inventory")
		_ = os.Setenv("MONGODB_COLLECTION_NAME", "nodes")
		_ = os.Setenv("PORT", "8080")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if cfg.MongoURI != "mongodb://db.example:27017" || cfg.DBName != "inventory" ||
			cfg.CollectionName != "nodes" || cfg.Port != "8080" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("WhitespaceFallsBack", func(t *testing.T) {
		_ = os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		_ = os.Setenv("MONGODB_DB_NAME", "   ")
		_ = os.Setenv("MONGODB_COLLECTION_NAME", "")
		_ = os.Setenv("PORT", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if cfg.DBName != "network_devices" || cfg.CollectionName != "devices" {
			t.Fatalf("expected defaults for blank values, got %+v", cfg)
		}
	})

	t.Run("InvalidPort", func(t *testing.T) {
		_ = os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		_ = os.Setenv("PORT", "not-a-port")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for non-numeric PORT, got nil")
		}

		_ = os.Setenv("PORT", "70000")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for out-of-range PORT, got nil")
		}
	})
}
