package onboard

import (
	"testing"

	"github.com/HerbHall/gangway/internal/driver"
)

func TestResolveManagementInterface_match(t *testing.T) {
	ipIfs := driver.InterfaceIPs{
		"GigabitEthernet0/0": {"10.1.1.1": {PrefixLength: 24}},
		"Loopback0":          {"192.0.2.1": {PrefixLength: 32}},
	}

	binding, err := ResolveManagementInterface(ipIfs, "10.1.1.1")
	if err != nil {
		t.Fatalf("ResolveManagementInterface: %v", err)
	}
	if binding.InterfaceName != "GigabitEthernet0/0" {
		t.Errorf("interface = %q, want GigabitEthernet0/0", binding.InterfaceName)
	}
	if binding.PrefixLength != 24 {
		t.Errorf("prefix length = %d, want 24", binding.PrefixLength)
	}
}

func TestResolveManagementInterface_no_match(t *testing.T) {
	ipIfs := driver.InterfaceIPs{
		"Loopback0": {"192.0.2.1": {PrefixLength: 32}},
	}

	_, err := ResolveManagementInterface(ipIfs, "10.1.1.1")
	if err == nil {
		t.Fatal("expected error when no interface carries the address")
	}
	if ReasonOf(err) != ReasonGeneral {
		t.Errorf("reason = %s, want %s", ReasonOf(err), ReasonGeneral)
	}
}

func TestResolveManagementInterface_deterministic_order(t *testing.T) {
	// Same address on two interfaces: sorted name order wins every time.
	ipIfs := driver.InterfaceIPs{
		"Vlan100": {"10.1.1.1": {PrefixLength: 24}},
		"Vlan10":  {"10.1.1.1": {PrefixLength: 25}},
	}

	for range 20 {
		binding, err := ResolveManagementInterface(ipIfs, "10.1.1.1")
		if err != nil {
			t.Fatalf("ResolveManagementInterface: %v", err)
		}
		if binding.InterfaceName != "Vlan10" {
			t.Fatalf("interface = %q, want Vlan10", binding.InterfaceName)
		}
	}
}

func TestResolveManagementInterface_empty_map(t *testing.T) {
	_, err := ResolveManagementInterface(driver.InterfaceIPs{}, "10.1.1.1")
	if err == nil {
		t.Fatal("expected error for empty interface map")
	}
}
