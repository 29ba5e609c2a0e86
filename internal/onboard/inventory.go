package onboard

import (
	"context"

	"github.com/HerbHall/gangway/internal/netbox"
)

// Inventory provides the ensure-or-create surface of the inventory
// store. Defined here (consumer-side) and implemented by the NetBox
// client; tests supply an in-memory fake. Find methods return nil, nil
// when the entity is absent. Atomicity of concurrent get-or-create is
// the store's responsibility; a duplicate-key failure surfaces as an
// ordinary error and is reported as fail-general.
type Inventory interface {
	FindSiteBySlug(ctx context.Context, slug string) (*netbox.NBSite, error)

	FindManufacturerByName(ctx context.Context, name string) (*netbox.NBManufacturer, error)
	CreateManufacturer(ctx context.Context, name string) (*netbox.NBManufacturer, error)

	FindDeviceTypeBySlug(ctx context.Context, slug string) (*netbox.NBDeviceType, error)
	CreateDeviceType(ctx context.Context, slug, model string, manufacturerID int) (*netbox.NBDeviceType, error)

	FindDeviceRoleBySlug(ctx context.Context, slug string) (*netbox.NBDeviceRole, error)
	CreateDeviceRole(ctx context.Context, name string) (*netbox.NBDeviceRole, error)

	FindPlatformBySlug(ctx context.Context, slug string) (*netbox.NBPlatform, error)
	CreatePlatform(ctx context.Context, name, driver string) (*netbox.NBPlatform, error)

	FindDevice(ctx context.Context, name string, typeID, roleID, platformID, siteID int) (*netbox.NBDevice, error)
	CreateDevice(ctx context.Context, req netbox.NBDeviceCreateRequest) (*netbox.NBDevice, error)
	UpdateDevice(ctx context.Context, id int, fields map[string]any) (*netbox.NBDevice, error)

	FindInterface(ctx context.Context, deviceID int, name string) (*netbox.NBInterface, error)
	CreateInterface(ctx context.Context, deviceID int, name string) (*netbox.NBInterface, error)

	FindIPAddress(ctx context.Context, address string) (*netbox.NBIPAddress, error)
	CreateIPAddress(ctx context.Context, address string) (*netbox.NBIPAddress, error)
	AssignIPAddress(ctx context.Context, ipID, interfaceID int) (*netbox.NBIPAddress, error)
}

// Compile-time guard: the NetBox client satisfies the inventory surface.
var _ Inventory = (*netbox.Client)(nil)
