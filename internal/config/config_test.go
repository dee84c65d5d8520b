package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaultsForDevProfile(t *testing.T) {
	cfg, err := Load("filequery", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileDev {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileDev)
	}
	if cfg.Service.Name != "filequery" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
	if !cfg.Reader.OneShot {
		t.Fatal("Reader.OneShot should default to true")
	}
	if cfg.Reader.StagingDir != "" {
		t.Fatalf("Reader.StagingDir = %q", cfg.Reader.StagingDir)
	}
	if cfg.ObjectStore.Enabled() {
		t.Fatal("ObjectStore should be disabled without an endpoint")
	}
	if cfg.Observability.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogJSON {
		t.Fatal("LogJSON should default to false in dev")
	}
}

func TestLoadProdProfileDefaults(t *testing.T) {
	cfg, err := Load("filequery", mapLookup(map[string]string{"FILEQUERY_PROFILE": "prod"}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileProd {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileProd)
	}
	if cfg.Observability.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if !cfg.Observability.LogJSON {
		t.Fatal("LogJSON should default to true in prod")
	}
	if !cfg.ObjectStore.UseSSL {
		t.Fatal("ObjectStore.UseSSL should default to true in prod")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	cfg, err := Load("filequery", mapLookup(map[string]string{
		"FILEQUERY_PROFILE":                "test",
		"FILEQUERY_SERVICE_NAME":           "filequery-batch",
		"FILEQUERY_ONE_SHOT":               "false",
		"FILEQUERY_STAGING_DIR":            " /var/tmp/filequery ",
		"FILEQUERY_OBJECTSTORE_ENDPOINT":   "https://minio.example.com",
		"FILEQUERY_OBJECTSTORE_REGION":     "eu-central-1",
		"FILEQUERY_OBJECTSTORE_ACCESS_KEY": "abc",
		"FILEQUERY_OBJECTSTORE_SECRET_KEY": "def",
		"FILEQUERY_OBJECTSTORE_USE_SSL":    "true",
		"FILEQUERY_LOG_JSON":               "true",
		"FILEQUERY_LOG_LEVEL":              "error",
	}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Name != "filequery-batch" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.Reader.OneShot {
		t.Fatal("Reader.OneShot = true, want false")
	}
	if cfg.Reader.StagingDir != "/var/tmp/filequery" {
		t.Fatalf("Reader.StagingDir = %q", cfg.Reader.StagingDir)
	}
	if !cfg.ObjectStore.Enabled() {
		t.Fatal("ObjectStore should be enabled")
	}
	if cfg.ObjectStore.Region != "eu-central-1" {
		t.Fatalf("ObjectStore.Region = %q", cfg.ObjectStore.Region)
	}
	if cfg.ObjectStore.AccessKeyID != "abc" || cfg.ObjectStore.SecretAccessKey != "def" {
		t.Fatalf("ObjectStore credentials = %q/%q", cfg.ObjectStore.AccessKeyID, cfg.ObjectStore.SecretAccessKey)
	}
	if !cfg.ObjectStore.UseSSL {
		t.Fatal("ObjectStore.UseSSL = false, want true")
	}
	if !cfg.Observability.LogJSON {
		t.Fatal("LogJSON = false, want true")
	}
	if cfg.Observability.LogLevel != slog.LevelError {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
}

func TestLoadErrorsOnInvalidValues(t *testing.T) {
	tests := []map[string]string{
		{"FILEQUERY_PROFILE": "oops"},
		{"FILEQUERY_ONE_SHOT": "sometimes"},
		{"FILEQUERY_OBJECTSTORE_USE_SSL": "not-bool"},
		{"FILEQUERY_LOG_JSON": "yes please"},
		{"FILEQUERY_LOG_LEVEL": "verbose"},
		{"FILEQUERY_SERVICE_NAME": " "},
		{"FILEQUERY_OBJECTSTORE_ENDPOINT": "localhost:9000", "FILEQUERY_OBJECTSTORE_ACCESS_KEY": "abc"},
	}
	for _, env := range tests {
		_, err := Load("filequery", mapLookup(env))
		if err == nil {
			t.Fatalf("Load() expected error for env %#v", env)
		}
	}
}

func TestLoadRequiresLookup(t *testing.T) {
	if _, err := Load("filequery", nil); err == nil {
		t.Fatal("expected error for nil lookup")
	}
}

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
