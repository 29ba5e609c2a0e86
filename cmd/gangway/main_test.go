package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBootstrap_wires_services(t *testing.T) {
	t.Setenv("GANGWAY_DATABASE_PATH", filepath.Join(t.TempDir(), "gangway.db"))
	t.Setenv("GANGWAY_NETBOX_URL", "https://netbox.example.com")
	t.Setenv("GANGWAY_SERVER_HOST", "127.0.0.1")
	t.Setenv("GANGWAY_SERVER_PORT", "9191")

	a, err := bootstrap("")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer a.close()

	if a.addr != "127.0.0.1:9191" {
		t.Errorf("addr = %q, want 127.0.0.1:9191", a.addr)
	}
	if a.client == nil || a.pipeline == nil || a.tasks == nil {
		t.Error("bootstrap left services unwired")
	}
}

func TestBootstrap_requires_netbox_url(t *testing.T) {
	t.Setenv("GANGWAY_DATABASE_PATH", filepath.Join(t.TempDir(), "gangway.db"))
	t.Setenv("GANGWAY_NETBOX_URL", "")

	_, err := bootstrap("")
	if err == nil || !strings.Contains(err.Error(), "netbox.url") {
		t.Fatalf("err = %v, want netbox.url configuration error", err)
	}
}
