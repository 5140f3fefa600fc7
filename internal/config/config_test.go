package config_test

import (
	"path/filepath"
	"testing"

	"github.com/mikegtech/insbridge-decoder/internal/config"
)

func TestDefaultResolvesExecutableRelativePaths(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if filepath.Base(cfg.TemplatesPath) != "templates.yml" {
		t.Errorf("TemplatesPath = %q, want it to end in templates.yml", cfg.TemplatesPath)
	}
	if filepath.Base(cfg.CachePath) != "decodecache.sqlite" {
		t.Errorf("CachePath = %q, want it to end in decodecache.sqlite", cfg.CachePath)
	}
	if filepath.Dir(cfg.TemplatesPath) != filepath.Dir(cfg.CachePath) {
		t.Errorf("TemplatesPath and CachePath have different directories: %q vs %q",
			cfg.TemplatesPath, cfg.CachePath)
	}
	if !filepath.IsAbs(cfg.TemplatesPath) {
		t.Errorf("TemplatesPath = %q, want an absolute path", cfg.TemplatesPath)
	}
}

func TestWithTemplatesPathOverridesWithoutMutatingReceiver(t *testing.T) {
	base, err := config.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	overridden := base.WithTemplatesPath("/custom/templates.yml")
	if overridden.TemplatesPath != "/custom/templates.yml" {
		t.Errorf("WithTemplatesPath() = %q, want the override", overridden.TemplatesPath)
	}
	if overridden.CachePath != base.CachePath {
		t.Errorf("WithTemplatesPath() changed CachePath to %q, want %q unchanged",
			overridden.CachePath, base.CachePath)
	}
	if base.TemplatesPath == "/custom/templates.yml" {
		t.Error("WithTemplatesPath() mutated the receiver's own TemplatesPath")
	}
}

func TestWithCachePathOverridesWithoutMutatingReceiver(t *testing.T) {
	base, err := config.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	overridden := base.WithCachePath("/custom/cache.sqlite")
	if overridden.CachePath != "/custom/cache.sqlite" {
		t.Errorf("WithCachePath() = %q, want the override", overridden.CachePath)
	}
	if overridden.TemplatesPath != base.TemplatesPath {
		t.Errorf("WithCachePath() changed TemplatesPath to %q, want %q unchanged",
			overridden.TemplatesPath, base.TemplatesPath)
	}
	if base.CachePath == "/custom/cache.sqlite" {
		t.Error("WithCachePath() mutated the receiver's own CachePath")
	}
}

func TestOpcodeTableVersionIsStable(t *testing.T) {
	if config.OpcodeTableVersion == "" {
		t.Error("OpcodeTableVersion is empty, want a stamped version string")
	}
}
