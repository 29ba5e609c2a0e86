package config

import (
	"testing"
	"time"
)

func TestLoad_defaults(t *testing.T) {
	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := v.GetInt("server.port"); got != 8090 {
		t.Errorf("server.port = %d, want 8090", got)
	}
	if got := v.GetString("onboarding.default_device_role"); got != "network" {
		t.Errorf("onboarding.default_device_role = %q, want %q", got, "network")
	}
	if !v.GetBool("onboarding.create_manufacturer_if_missing") {
		t.Error("create_manufacturer_if_missing should default to true")
	}
	if got := v.GetInt("device.ssh_port"); got != 22 {
		t.Errorf("device.ssh_port = %d, want 22", got)
	}
}

func TestLoad_env_override(t *testing.T) {
	t.Setenv("GANGWAY_DEVICE_USERNAME", "netops")

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.GetString("device.username"); got != "netops" {
		t.Errorf("device.username = %q, want %q", got, "netops")
	}
}

func TestUnmarshalKey_env_override(t *testing.T) {
	t.Setenv("GANGWAY_NETBOX_URL", "https://netbox.example.com")

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var nb struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	}
	if err := UnmarshalKey(v, "netbox", &nb); err != nil {
		t.Fatalf("UnmarshalKey: %v", err)
	}
	if nb.URL != "https://netbox.example.com" {
		t.Errorf("url = %q, want the environment value", nb.URL)
	}
	if nb.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want default 30s", nb.Timeout)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"json info", "info", "json", false},
		{"console debug", "debug", "console", false},
		{"empty format defaults to json", "warn", "", false},
		{"bad level", "loud", "json", true},
		{"bad format", "info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			v.Set("logging.level", tt.level)
			v.Set("logging.format", tt.format)

			logger, err := NewLogger(v)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger: %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger returned nil logger")
			}
		})
	}
}
