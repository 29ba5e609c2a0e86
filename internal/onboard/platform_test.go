package onboard

import (
	"context"
	"testing"

	"github.com/HerbHall/gangway/internal/netbox"
)

func TestResolvePlatform_existing_record(t *testing.T) {
	inv := newFakeInventory()
	inv.platforms["cisco_ios"] = &netbox.NBPlatform{ID: 5, Slug: "cisco_ios", NapalmDriver: "ios"}

	p, err := ResolvePlatform(context.Background(), inv, "cisco_ios", false)
	if err != nil {
		t.Fatalf("ResolvePlatform: %v", err)
	}
	if p.ID != 5 || p.NapalmDriver != "ios" {
		t.Errorf("got platform %+v, want existing record with driver ios", p)
	}
	if inv.creations != 0 {
		t.Errorf("creations = %d, want 0", inv.creations)
	}
}

func TestResolvePlatform_auto_creates_known_platforms(t *testing.T) {
	tests := []struct {
		platform string
		driver   string
	}{
		{"cisco_ios", "ios"},
		{"cisco_nxos", "nxos_ssh"},
		{"arista_eos", "eos"},
		{"juniper_junos", "junos"},
		{"cisco_xr", "iosxr"},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			inv := newFakeInventory()
			p, err := ResolvePlatform(context.Background(), inv, tt.platform, true)
			if err != nil {
				t.Fatalf("ResolvePlatform: %v", err)
			}
			if p.NapalmDriver != tt.driver {
				t.Errorf("driver = %q, want %q", p.NapalmDriver, tt.driver)
			}
		})
	}
}

func TestResolvePlatform_missing_without_create(t *testing.T) {
	inv := newFakeInventory()
	_, err := ResolvePlatform(context.Background(), inv, "cisco_ios", false)
	if err == nil {
		t.Fatal("expected error for missing platform with creation disabled")
	}
	if ReasonOf(err) != ReasonGeneral {
		t.Errorf("reason = %s, want %s", ReasonOf(err), ReasonGeneral)
	}
}

func TestResolvePlatform_unknown_platform_not_auto_created(t *testing.T) {
	inv := newFakeInventory()
	_, err := ResolvePlatform(context.Background(), inv, "vyos", true)
	if err == nil {
		t.Fatal("expected error for platform outside the compatibility table")
	}
	if inv.creations != 0 {
		t.Errorf("creations = %d, want 0", inv.creations)
	}
}

func TestResolvePlatform_record_without_driver(t *testing.T) {
	inv := newFakeInventory()
	inv.platforms["cisco_ios"] = &netbox.NBPlatform{ID: 5, Slug: "cisco_ios"}

	_, err := ResolvePlatform(context.Background(), inv, "cisco_ios", true)
	if err == nil {
		t.Fatal("expected error for platform record with no driver")
	}
	if ReasonOf(err) != ReasonGeneral {
		t.Errorf("reason = %s, want %s", ReasonOf(err), ReasonGeneral)
	}
}
