package onboard

import (
	"context"

	"github.com/HerbHall/gangway/internal/netbox"
)

// platformDrivers is the static compatibility table mapping canonical
// platform identifiers to automation driver names. Consulted only when
// auto-creating a platform record that does not exist in inventory yet.
var platformDrivers = map[string]string{
	"cisco_ios":     "ios",
	"cisco_nxos":    "nxos_ssh",
	"arista_eos":    "eos",
	"juniper_junos": "junos",
	"cisco_xr":      "iosxr",
}

// ResolvePlatform maps a canonical platform identifier to a registered
// platform record carrying a driver name. Lookup is by slug. When the
// record is absent and createIfMissing is set, the platform is created
// from the static compatibility table; identifiers outside the table are
// not eligible for auto-creation.
func ResolvePlatform(ctx context.Context, inv Inventory, name string, createIfMissing bool) (*netbox.NBPlatform, error) {
	platform, err := inv.FindPlatformBySlug(ctx, name)
	if err != nil {
		return nil, asGeneral(err)
	}

	if platform == nil {
		if !createIfMissing {
			return nil, Errorf(ReasonGeneral, "platform not found in inventory: %s", name)
		}
		driverName, ok := platformDrivers[name]
		if !ok {
			return nil, Errorf(ReasonGeneral, "platform not found in inventory and not eligible for auto-creation: %s", name)
		}
		platform, err = inv.CreatePlatform(ctx, name, driverName)
		if err != nil {
			return nil, asGeneral(err)
		}
	}

	if platform.NapalmDriver == "" {
		return nil, Errorf(ReasonGeneral, "onboarding for platform %s not supported", name)
	}
	return platform, nil
}
