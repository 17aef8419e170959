package infra

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.AppEnv != "development" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DefaultRegion != "Global" || cfg.RemotePrefix != "outputs" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("write timeout = %v", cfg.HTTPWriteTimeout)
	}
	if !cfg.ModerationEnabled {
		t.Fatal("moderation must default on")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ASSETS_DIR", "/data/assets")
	t.Setenv("MODERATION_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9999" || cfg.AssetsDir != "/data/assets" {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.ModerationEnabled {
		t.Fatal("moderation override ignored")
	}
	if got := cfg.UploadsDir(); got != filepath.Join("/data/assets", "uploads") {
		t.Fatalf("UploadsDir = %q", got)
	}
}

func TestLoadConfigSyncRequiresBucket(t *testing.T) {
	t.Setenv("SYNC_ENABLED", "true")
	t.Setenv("S3_BUCKET", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SyncEnabled {
		t.Fatal("sync must be disabled without a bucket")
	}

	t.Setenv("S3_BUCKET", "campaign-creatives")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.SyncEnabled {
		t.Fatal("sync must be enabled with a bucket")
	}
}
