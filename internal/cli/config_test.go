package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigHome(t *testing.T, dir string) {
	t.Helper()
	old := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", dir)
	t.Cleanup(func() {
		if old != "" {
			os.Setenv("XDG_CONFIG_HOME", old)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	// No config file present: defaults apply.
	withConfigHome(t, t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8400" {
		t.Errorf("Server.Addr = %q, want :8400", cfg.Server.Addr)
	}
	if cfg.Store.MongoURI != "" {
		t.Errorf("Store.MongoURI = %q, want empty", cfg.Store.MongoURI)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	withConfigHome(t, home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `
[cache]
backend = "redis"
redis_addr = "localhost:6379"

[store]
mongo_uri = "mongodb://localhost:27017"

[server]
addr = ":9000"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Store.MongoURI = %q", cfg.Store.MongoURI)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	home := t.TempDir()
	withConfigHome(t, home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[cache\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Typos must not pass silently as defaults.
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() accepted a malformed file")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	home := t.TempDir()
	withConfigHome(t, home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[store]\nmongo_uri = \"mongodb://db:27017\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	// Unset sections keep their defaults.
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8400" {
		t.Errorf("Server.Addr = %q, want :8400", cfg.Server.Addr)
	}
	if cfg.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("Store.MongoURI = %q", cfg.Store.MongoURI)
	}
}
