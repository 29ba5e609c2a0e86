package onboard

import (
	"context"
	"fmt"

	"github.com/HerbHall/gangway/internal/netbox"
)

// fakeInventory is an in-memory Inventory used by reconciliation and
// platform tests. It counts creations so idempotence tests can assert a
// second pass makes no new records.
type fakeInventory struct {
	sites         map[string]*netbox.NBSite
	manufacturers map[string]*netbox.NBManufacturer
	deviceTypes   map[string]*netbox.NBDeviceType
	roles         map[string]*netbox.NBDeviceRole
	platforms     map[string]*netbox.NBPlatform
	devices       map[string]*netbox.NBDevice
	interfaces    map[string]*netbox.NBInterface
	ipAddresses   map[string]*netbox.NBIPAddress

	nextID    int
	creations int

	failFind string // entity kind whose Find call returns an error
}

var _ Inventory = (*fakeInventory)(nil)

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		sites:         map[string]*netbox.NBSite{},
		manufacturers: map[string]*netbox.NBManufacturer{},
		deviceTypes:   map[string]*netbox.NBDeviceType{},
		roles:         map[string]*netbox.NBDeviceRole{},
		platforms:     map[string]*netbox.NBPlatform{},
		devices:       map[string]*netbox.NBDevice{},
		interfaces:    map[string]*netbox.NBInterface{},
		ipAddresses:   map[string]*netbox.NBIPAddress{},
	}
}

func (f *fakeInventory) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeInventory) FindSiteBySlug(_ context.Context, slug string) (*netbox.NBSite, error) {
	if f.failFind == "site" {
		return nil, fmt.Errorf("inventory unavailable")
	}
	return f.sites[slug], nil
}

func (f *fakeInventory) FindManufacturerByName(_ context.Context, name string) (*netbox.NBManufacturer, error) {
	if f.failFind == "manufacturer" {
		return nil, fmt.Errorf("inventory unavailable")
	}
	return f.manufacturers[name], nil
}

func (f *fakeInventory) CreateManufacturer(_ context.Context, name string) (*netbox.NBManufacturer, error) {
	f.creations++
	m := &netbox.NBManufacturer{ID: f.id(), Name: name, Slug: netbox.SlugFromName(name)}
	f.manufacturers[name] = m
	return m, nil
}

func (f *fakeInventory) FindDeviceTypeBySlug(_ context.Context, slug string) (*netbox.NBDeviceType, error) {
	return f.deviceTypes[slug], nil
}

func (f *fakeInventory) CreateDeviceType(_ context.Context, slug, model string, manufacturerID int) (*netbox.NBDeviceType, error) {
	f.creations++
	var manufacturer *netbox.NBManufacturer
	for _, m := range f.manufacturers {
		if m.ID == manufacturerID {
			manufacturer = m
		}
	}
	dt := &netbox.NBDeviceType{ID: f.id(), Slug: slug, Model: model, Manufacturer: manufacturer}
	f.deviceTypes[slug] = dt
	return dt, nil
}

func (f *fakeInventory) FindDeviceRoleBySlug(_ context.Context, slug string) (*netbox.NBDeviceRole, error) {
	return f.roles[slug], nil
}

func (f *fakeInventory) CreateDeviceRole(_ context.Context, name string) (*netbox.NBDeviceRole, error) {
	f.creations++
	r := &netbox.NBDeviceRole{ID: f.id(), Name: name, Slug: netbox.SlugFromName(name)}
	f.roles[r.Slug] = r
	return r, nil
}

func (f *fakeInventory) FindPlatformBySlug(_ context.Context, slug string) (*netbox.NBPlatform, error) {
	if f.failFind == "platform" {
		return nil, fmt.Errorf("inventory unavailable")
	}
	return f.platforms[slug], nil
}

func (f *fakeInventory) CreatePlatform(_ context.Context, name, driver string) (*netbox.NBPlatform, error) {
	f.creations++
	p := &netbox.NBPlatform{ID: f.id(), Name: name, Slug: name, NapalmDriver: driver}
	f.platforms[name] = p
	return p, nil
}

func (f *fakeInventory) FindDevice(_ context.Context, name string, typeID, roleID, platformID, siteID int) (*netbox.NBDevice, error) {
	return f.devices[name], nil
}

func (f *fakeInventory) CreateDevice(_ context.Context, req netbox.NBDeviceCreateRequest) (*netbox.NBDevice, error) {
	f.creations++
	d := &netbox.NBDevice{ID: f.id(), Name: req.Name, Serial: req.Serial}
	f.devices[req.Name] = d
	return d, nil
}

func (f *fakeInventory) UpdateDevice(_ context.Context, id int, fields map[string]any) (*netbox.NBDevice, error) {
	for _, d := range f.devices {
		if d.ID != id {
			continue
		}
		if serial, ok := fields["serial"].(string); ok {
			d.Serial = serial
		}
		if ipID, ok := fields["primary_ip4"].(int); ok {
			for _, ip := range f.ipAddresses {
				if ip.ID == ipID {
					d.PrimaryIP4 = ip
				}
			}
		}
		return d, nil
	}
	return nil, fmt.Errorf("device %d not found", id)
}

func ifaceKey(deviceID int, name string) string {
	return fmt.Sprintf("%d/%s", deviceID, name)
}

func (f *fakeInventory) FindInterface(_ context.Context, deviceID int, name string) (*netbox.NBInterface, error) {
	return f.interfaces[ifaceKey(deviceID, name)], nil
}

func (f *fakeInventory) CreateInterface(_ context.Context, deviceID int, name string) (*netbox.NBInterface, error) {
	f.creations++
	iface := &netbox.NBInterface{ID: f.id(), Name: name}
	f.interfaces[ifaceKey(deviceID, name)] = iface
	return iface, nil
}

func (f *fakeInventory) FindIPAddress(_ context.Context, address string) (*netbox.NBIPAddress, error) {
	return f.ipAddresses[address], nil
}

func (f *fakeInventory) CreateIPAddress(_ context.Context, address string) (*netbox.NBIPAddress, error) {
	f.creations++
	ip := &netbox.NBIPAddress{ID: f.id(), Address: address}
	f.ipAddresses[address] = ip
	return ip, nil
}

func (f *fakeInventory) AssignIPAddress(_ context.Context, ipID, interfaceID int) (*netbox.NBIPAddress, error) {
	for _, ip := range f.ipAddresses {
		if ip.ID == ipID {
			ip.AssignedObjectType = "dcim.interface"
			ip.AssignedObjectID = interfaceID
			return ip, nil
		}
	}
	return nil, fmt.Errorf("ip address %d not found", ipID)
}
