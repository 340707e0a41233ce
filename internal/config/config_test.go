package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIRESTORE_PROJECT_ID", "senalmaq-test")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CacheProvider != "memory" {
		t.Errorf("CacheProvider = %q, want memory", cfg.CacheProvider)
	}
	if cfg.ShippingThresholdCents != 300000 {
		t.Errorf("ShippingThresholdCents = %d, want 300000", cfg.ShippingThresholdCents)
	}
	if cfg.ShippingCostCents != 12000 {
		t.Errorf("ShippingCostCents = %d, want 12000", cfg.ShippingCostCents)
	}
	if cfg.WhatsAppLink != "https://wa.me/573176693030" {
		t.Errorf("WhatsAppLink = %q", cfg.WhatsAppLink)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.AdminEnabled() {
		t.Error("AdminEnabled() = true without credentials")
	}
}

func TestLoadMissingProject(t *testing.T) {
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded without FIRESTORE_PROJECT_ID")
	}
}

func TestLoadShortJWTSecret(t *testing.T) {
	t.Setenv("FIRESTORE_PROJECT_ID", "senalmaq-test")
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a short JWT secret")
	}
}

func TestLoadAdminCredentialsMustPair(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAIL", "admin@senalmaq.com")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted admin email without password hash")
	}
}

func TestLoadAdminCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAIL", "admin@senalmaq.com")
	t.Setenv("ADMIN_PASSWORD_SHA256", strings.Repeat("ab", 32))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.AdminEnabled() {
		t.Error("AdminEnabled() = false with credentials configured")
	}
}

func TestLoadRejectsWhatsAppWithQuery(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORE_WHATSAPP", "https://wa.me/573176693030?text=hola")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a WhatsApp link with a query string")
	}
}

func TestLoadInvalidCacheProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_PROVIDER", "memcached")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unsupported cache provider")
	}
}
