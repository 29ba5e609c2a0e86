package onboard

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/gangway/internal/netbox"
)

// modelSlugRe matches characters NetBox rejects in a device-type slug.
var modelSlugRe = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

// sanitizeModelSlug makes a device model usable as a device-type slug.
// Models already within the allowed character set pass through
// untouched; otherwise spaces become hyphens. Stable across runs.
func sanitizeModelSlug(model string) string {
	if !modelSlugRe.MatchString(model) {
		return model
	}
	return strings.ReplaceAll(model, " ", "-")
}

// Reconciler performs the ordered, idempotent ensure-or-create pass that
// records a device's facts in inventory. Steps create but never delete;
// re-running with identical facts converges to the same state with zero
// additional creations.
type Reconciler struct {
	inv    Inventory
	cfg    Config
	logger *zap.Logger
}

// NewReconciler creates a reconciler over the given inventory store.
func NewReconciler(inv Inventory, cfg Config, logger *zap.Logger) *Reconciler {
	return &Reconciler{inv: inv, cfg: cfg, logger: logger}
}

// Reconcile runs the ensure steps in strict order: manufacturer, device
// type, device role, device, interface, primary IP. Each step depends on
// the ones before it; the first failure aborts the pass. Mutations
// already committed are left in place and re-discovered on retry.
func (r *Reconciler) Reconcile(ctx context.Context, facts *DeviceFacts, binding ManagementBinding, platform *netbox.NBPlatform, req Request) (*netbox.NBDevice, error) {
	site, err := r.resolveSite(ctx, req.Site)
	if err != nil {
		return nil, err
	}

	manufacturer, err := r.ensureManufacturer(ctx, facts.Vendor)
	if err != nil {
		return nil, err
	}

	deviceType, err := r.ensureDeviceType(ctx, facts, manufacturer)
	if err != nil {
		return nil, err
	}

	role, err := r.ensureDeviceRole(ctx, req.Role)
	if err != nil {
		return nil, err
	}

	device, err := r.ensureDevice(ctx, facts, deviceType, role, platform, site)
	if err != nil {
		return nil, err
	}

	iface, err := r.ensureInterface(ctx, device, binding.InterfaceName)
	if err != nil {
		return nil, err
	}

	device, err = r.ensurePrimaryIP(ctx, device, iface, req.IPAddress, binding.PrefixLength)
	if err != nil {
		return nil, err
	}

	r.logger.Info("device reconciled",
		zap.String("hostname", facts.Hostname),
		zap.Int("device_id", device.ID),
		zap.String("site", req.Site),
	)
	return device, nil
}

// resolveSite looks up the target site. Sites are operator-managed and
// never auto-created by onboarding; a missing site is a config error.
func (r *Reconciler) resolveSite(ctx context.Context, slug string) (*netbox.NBSite, error) {
	site, err := r.inv.FindSiteBySlug(ctx, slug)
	if err != nil {
		return nil, asGeneral(err)
	}
	if site == nil {
		return nil, Errorf(ReasonConfig, "site not found: %s", slug)
	}
	return site, nil
}

func (r *Reconciler) ensureManufacturer(ctx context.Context, vendor string) (*netbox.NBManufacturer, error) {
	m, err := r.inv.FindManufacturerByName(ctx, vendor)
	if err != nil {
		return nil, asGeneral(err)
	}
	if m != nil {
		return m, nil
	}

	if !r.cfg.CreateManufacturerIfMissing {
		return nil, Errorf(ReasonConfig, "manufacturer not found: %s", vendor)
	}
	m, err = r.inv.CreateManufacturer(ctx, vendor)
	if err != nil {
		return nil, asGeneral(err)
	}
	r.logger.Info("manufacturer created", zap.String("name", vendor), zap.Int("id", m.ID))
	return m, nil
}

// ensureDeviceType resolves the device type by the sanitized model slug,
// guarding against the same model slug existing under a different
// manufacturer (two vendors sharing a model name).
func (r *Reconciler) ensureDeviceType(ctx context.Context, facts *DeviceFacts, manufacturer *netbox.NBManufacturer) (*netbox.NBDeviceType, error) {
	slug := sanitizeModelSlug(facts.Model)

	dt, err := r.inv.FindDeviceTypeBySlug(ctx, slug)
	if err != nil {
		return nil, asGeneral(err)
	}
	if dt == nil {
		if !r.cfg.CreateDeviceTypeIfMissing {
			return nil, Errorf(ReasonConfig, "device type not found: %s", slug)
		}
		dt, err = r.inv.CreateDeviceType(ctx, slug, strings.ToUpper(slug), manufacturer.ID)
		if err != nil {
			return nil, asGeneral(err)
		}
		r.logger.Info("device type created", zap.String("slug", slug), zap.Int("id", dt.ID))
		return dt, nil
	}

	if dt.Manufacturer == nil || dt.Manufacturer.ID != manufacturer.ID {
		return nil, Errorf(ReasonConfig, "device type %s already exists for a different manufacturer than %s", slug, manufacturer.Name)
	}
	return dt, nil
}

// ensureDeviceRole resolves the role slug from the request, defaulting
// to the configured role when the request carries none.
func (r *Reconciler) ensureDeviceRole(ctx context.Context, requested string) (*netbox.NBDeviceRole, error) {
	slug := requested
	if slug == "" {
		slug = r.cfg.DefaultDeviceRole
	}

	role, err := r.inv.FindDeviceRoleBySlug(ctx, slug)
	if err != nil {
		return nil, asGeneral(err)
	}
	if role != nil {
		return role, nil
	}

	if !r.cfg.CreateDeviceRoleIfMissing {
		return nil, Errorf(ReasonConfig, "device role not found: %s", slug)
	}
	role, err = r.inv.CreateDeviceRole(ctx, slug)
	if err != nil {
		return nil, asGeneral(err)
	}
	r.logger.Info("device role created", zap.String("slug", slug), zap.Int("id", role.ID))
	return role, nil
}

// ensureDevice gets or creates the device by its identifying tuple, then
// unconditionally overwrites the serial number from the collected facts.
func (r *Reconciler) ensureDevice(ctx context.Context, facts *DeviceFacts, dt *netbox.NBDeviceType, role *netbox.NBDeviceRole, platform *netbox.NBPlatform, site *netbox.NBSite) (*netbox.NBDevice, error) {
	platformID := 0
	if platform != nil {
		platformID = platform.ID
	}

	device, err := r.inv.FindDevice(ctx, facts.Hostname, dt.ID, role.ID, platformID, site.ID)
	if err != nil {
		return nil, asGeneral(err)
	}

	if device == nil {
		device, err = r.inv.CreateDevice(ctx, netbox.NBDeviceCreateRequest{
			Name:       facts.Hostname,
			DeviceType: dt.ID,
			Role:       role.ID,
			Platform:   platformID,
			Site:       site.ID,
			Status:     "active",
			Serial:     facts.SerialNumber,
		})
		if err != nil {
			return nil, asGeneral(err)
		}
		r.logger.Info("device created", zap.String("name", facts.Hostname), zap.Int("id", device.ID))
		return device, nil
	}

	device, err = r.inv.UpdateDevice(ctx, device.ID, map[string]any{"serial": facts.SerialNumber})
	if err != nil {
		return nil, asGeneral(err)
	}
	return device, nil
}

func (r *Reconciler) ensureInterface(ctx context.Context, device *netbox.NBDevice, name string) (*netbox.NBInterface, error) {
	iface, err := r.inv.FindInterface(ctx, device.ID, name)
	if err != nil {
		return nil, asGeneral(err)
	}
	if iface != nil {
		return iface, nil
	}

	iface, err = r.inv.CreateInterface(ctx, device.ID, name)
	if err != nil {
		return nil, asGeneral(err)
	}
	r.logger.Info("interface created", zap.String("name", name), zap.Int("device_id", device.ID))
	return iface, nil
}

// ensurePrimaryIP gets or creates the management address, binds it to
// the management interface when new or unassigned, and designates it as
// the device's primary IPv4 address.
func (r *Reconciler) ensurePrimaryIP(ctx context.Context, device *netbox.NBDevice, iface *netbox.NBInterface, managementIP string, prefixLen int) (*netbox.NBDevice, error) {
	cidr := fmt.Sprintf("%s/%d", managementIP, prefixLen)

	ip, err := r.inv.FindIPAddress(ctx, cidr)
	if err != nil {
		return nil, asGeneral(err)
	}
	created := false
	if ip == nil {
		ip, err = r.inv.CreateIPAddress(ctx, cidr)
		if err != nil {
			return nil, asGeneral(err)
		}
		created = true
	}

	if created || ip.AssignedObjectID == 0 {
		ip, err = r.inv.AssignIPAddress(ctx, ip.ID, iface.ID)
		if err != nil {
			return nil, asGeneral(err)
		}
		r.logger.Info("address assigned",
			zap.String("address", cidr),
			zap.String("interface", iface.Name),
		)
	}

	device, err = r.inv.UpdateDevice(ctx, device.ID, map[string]any{"primary_ip4": ip.ID})
	if err != nil {
		return nil, asGeneral(err)
	}
	return device, nil
}
