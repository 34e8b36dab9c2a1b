package infra

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "PORT", "JWT_SECRET", "ALLOWED_USERS", "GEMINI_API_KEY",
		"GEMINI_BASE_URL", "GEMINI_TEXT_MODEL", "GEMINI_IMAGE_MODEL",
		"DEFAULT_LOCALE", "CORS_ORIGINS", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DefaultLocale != "fr" {
		t.Fatalf("DefaultLocale = %q, want fr", cfg.DefaultLocale)
	}
	if cfg.GeminiTextModel != "gemini-2.0-flash" {
		t.Fatalf("GeminiTextModel = %q", cfg.GeminiTextModel)
	}
	if len(cfg.AllowedUsers) != 0 {
		t.Fatalf("AllowedUsers = %v, want empty", cfg.AllowedUsers)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("HTTPWriteTimeout = %v, want 120s", cfg.HTTPWriteTimeout)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Fatalf("RateLimitPerMin = %d, want 30", cfg.RateLimitPerMin)
	}
}

func TestLoadConfigAllowedUsersList(t *testing.T) {
	t.Setenv("ALLOWED_USERS", " alice@example.com, bob@example.com ,,charlie@example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	want := []string{"alice@example.com", "bob@example.com", "charlie@example.com"}
	if !reflect.DeepEqual(cfg.AllowedUsers, want) {
		t.Fatalf("AllowedUsers = %v, want %v", cfg.AllowedUsers, want)
	}
}

func TestLoadConfigMissingSecretDoesNotFail(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.JWTSecret != "" || cfg.GeminiAPIKey != "" {
		t.Fatal("missing secrets should load as empty strings")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	if got := getEnvInt("RATE_LIMIT_PER_MINUTE", 30); got != 30 {
		t.Fatalf("getEnvInt() = %d, want fallback 30", got)
	}
	t.Setenv("RATE_LIMIT_PER_MINUTE", "7")
	if got := getEnvInt("RATE_LIMIT_PER_MINUTE", 30); got != 7 {
		t.Fatalf("getEnvInt() = %d, want 7", got)
	}
}
