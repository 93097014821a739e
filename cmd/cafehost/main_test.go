package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("finding free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("CAFE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_InvalidPanelKind verifies run fails when config validation rejects
// an unknown panel kind.
func TestRun_InvalidPanelKind(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
site:
  id: test-site

frontend:
  bundle_dir: "` + tmpDir + `"
  panels:
    - domain: flow_automator
      kind: hologram
      title: "C.A.F.E."
      icon: "mdi:graph"

logging:
  level: error
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 8080
  timeouts:
    read: 30
    write: 60
    idle: 120

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
    access_token_ttl: 15
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("CAFE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with unknown panel kind")
	}
}

// TestRun_CleanStartupShutdown verifies a full startup and signal-driven
// shutdown with a valid config and bundle.
func TestRun_CleanStartupShutdown(t *testing.T) {
	tmpDir := t.TempDir()

	// Minimal bundle: index.html plus one hashed entry script.
	bundleDir := filepath.Join(tmpDir, "www")
	if err := os.MkdirAll(filepath.Join(bundleDir, "assets"), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bundleDir, "index.html"), []byte("<!doctype html>"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bundleDir, "assets", "index-Ab12Cd34.js"), []byte("// js"), 0600); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(tmpDir, "test-config.yaml")
	configContent := `
site:
  id: test-site

frontend:
  bundle_dir: "` + bundleDir + `"
  panels:
    - domain: flow_automator
      kind: custom_element
      title: "C.A.F.E."
      icon: "mdi:graph"

logging:
  level: error
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: ` + fmt.Sprint(freePort(t)) + `
  timeouts:
    read: 30
    write: 60
    idle: 120

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
    access_token_ttl: 15
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("CAFE_CONFIG", configPath)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	// Let startup complete, then simulate a shutdown signal.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() returned error on clean shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not return after context cancellation")
	}
}

func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("CAFE_CONFIG", "")

	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}
}

func TestGetConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("CAFE_CONFIG", "/etc/cafehost/config.yaml")

	if got := getConfigPath(); got != "/etc/cafehost/config.yaml" {
		t.Errorf("getConfigPath() = %q, want env override", got)
	}
}
