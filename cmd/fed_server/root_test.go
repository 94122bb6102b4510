package main

import (
	"path/filepath"
	"testing"

	"sibr/fed/pkg/config"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"version":  false,
		"filter":   false,
		"validate": false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootRunsServerDirectly(t *testing.T) {
	// The container entrypoint invokes the binary with no arguments, so the
	// root command itself must start the server.
	if rootCmd.RunE == nil {
		t.Fatal("root command has no RunE")
	}
}

func TestOpenCacheStoreBackends(t *testing.T) {
	cfg := config.NewDefault()

	cfg.Cache.Backend = "memory"
	store, err := openCacheStore(cfg)
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	store.Close()

	cfg.Cache.Backend = "sqlite"
	cfg.Cache.Path = filepath.Join(t.TempDir(), "nested", "pages.db")
	store, err = openCacheStore(cfg)
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	store.Close()

	cfg.Cache.Backend = "bolt"
	if _, err := openCacheStore(cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version is empty")
	}
	if GitCommit == "" || BuildDate == "" {
		t.Error("build metadata defaults are empty")
	}
}
