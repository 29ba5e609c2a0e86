package netbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps the NetBox REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new NetBox API client.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// FindSiteBySlug looks up a site by slug. Returns nil when absent.
func (c *Client) FindSiteBySlug(ctx context.Context, slug string) (*NBSite, error) {
	return findOne[NBSite](ctx, c, "/api/dcim/sites/", url.Values{"slug": {slug}})
}

// FindManufacturerByName looks up a manufacturer by exact name. Returns nil when absent.
func (c *Client) FindManufacturerByName(ctx context.Context, name string) (*NBManufacturer, error) {
	return findOne[NBManufacturer](ctx, c, "/api/dcim/manufacturers/", url.Values{"name": {name}})
}

// CreateManufacturer creates a manufacturer named name, slugging the name.
func (c *Client) CreateManufacturer(ctx context.Context, name string) (*NBManufacturer, error) {
	body := map[string]string{"name": name, "slug": SlugFromName(name)}
	var created NBManufacturer
	if err := c.doJSON(ctx, http.MethodPost, "/api/dcim/manufacturers/", body, &created); err != nil {
		return nil, fmt.Errorf("create manufacturer %q: %w", name, err)
	}
	return &created, nil
}

// FindDeviceTypeBySlug looks up a device type by slug. Returns nil when absent.
func (c *Client) FindDeviceTypeBySlug(ctx context.Context, slug string) (*NBDeviceType, error) {
	return findOne[NBDeviceType](ctx, c, "/api/dcim/device-types/", url.Values{"slug": {slug}})
}

// CreateDeviceType creates a device type with the given slug and display
// model, bound to the manufacturer.
func (c *Client) CreateDeviceType(ctx context.Context, slug, model string, manufacturerID int) (*NBDeviceType, error) {
	body := map[string]any{
		"manufacturer": manufacturerID,
		"model":        model,
		"slug":         slug,
	}
	var created NBDeviceType
	if err := c.doJSON(ctx, http.MethodPost, "/api/dcim/device-types/", body, &created); err != nil {
		return nil, fmt.Errorf("create device type %q: %w", model, err)
	}
	return &created, nil
}

// FindDeviceRoleBySlug looks up a device role by slug. Returns nil when absent.
func (c *Client) FindDeviceRoleBySlug(ctx context.Context, slug string) (*NBDeviceRole, error) {
	return findOne[NBDeviceRole](ctx, c, "/api/dcim/device-roles/", url.Values{"slug": {slug}})
}

// CreateDeviceRole creates a device role named name.
func (c *Client) CreateDeviceRole(ctx context.Context, name string) (*NBDeviceRole, error) {
	body := map[string]string{"name": name, "slug": SlugFromName(name), "color": "9e9e9e"}
	var created NBDeviceRole
	if err := c.doJSON(ctx, http.MethodPost, "/api/dcim/device-roles/", body, &created); err != nil {
		return nil, fmt.Errorf("create device role %q: %w", name, err)
	}
	return &created, nil
}

// FindPlatformBySlug looks up a platform by slug. Returns nil when absent.
func (c *Client) FindPlatformBySlug(ctx context.Context, slug string) (*NBPlatform, error) {
	return findOne[NBPlatform](ctx, c, "/api/dcim/platforms/", url.Values{"slug": {slug}})
}

// CreatePlatform creates a platform with the given name and automation driver.
// Name and slug are set to the same value, matching how canonical platform
// identifiers are used as lookup keys.
func (c *Client) CreatePlatform(ctx context.Context, name, driver string) (*NBPlatform, error) {
	body := map[string]string{"name": name, "slug": name, "napalm_driver": driver}
	var created NBPlatform
	if err := c.doJSON(ctx, http.MethodPost, "/api/dcim/platforms/", body, &created); err != nil {
		return nil, fmt.Errorf("create platform %q: %w", name, err)
	}
	return &created, nil
}

// FindDevice looks up a device by its identifying tuple. Zero-valued IDs are
// omitted from the filter. Returns nil when absent.
func (c *Client) FindDevice(ctx context.Context, name string, typeID, roleID, platformID, siteID int) (*NBDevice, error) {
	q := url.Values{"name": {name}}
	setIDFilter(q, "device_type_id", typeID)
	setIDFilter(q, "role_id", roleID)
	setIDFilter(q, "platform_id", platformID)
	setIDFilter(q, "site_id", siteID)
	return findOne[NBDevice](ctx, c, "/api/dcim/devices/", q)
}

// CreateDevice creates a new device in NetBox.
func (c *Client) CreateDevice(ctx context.Context, req NBDeviceCreateRequest) (*NBDevice, error) {
	var device NBDevice
	if err := c.doJSON(ctx, http.MethodPost, "/api/dcim/devices/", req, &device); err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}
	return &device, nil
}

// UpdateDevice patches fields of an existing device.
func (c *Client) UpdateDevice(ctx context.Context, id int, fields map[string]any) (*NBDevice, error) {
	path := fmt.Sprintf("/api/dcim/devices/%d/", id)
	var device NBDevice
	if err := c.doJSON(ctx, http.MethodPatch, path, fields, &device); err != nil {
		return nil, fmt.Errorf("update device %d: %w", id, err)
	}
	return &device, nil
}

// FindInterface looks up an interface by device and name. Returns nil when absent.
func (c *Client) FindInterface(ctx context.Context, deviceID int, name string) (*NBInterface, error) {
	q := url.Values{"name": {name}}
	setIDFilter(q, "device_id", deviceID)
	return findOne[NBInterface](ctx, c, "/api/dcim/interfaces/", q)
}

// CreateInterface creates a network interface on a device.
func (c *Client) CreateInterface(ctx context.Context, deviceID int, name string) (*NBInterface, error) {
	req := NBInterfaceCreateRequest{
		Device: deviceID,
		Name:   name,
		Type:   "other",
	}
	var iface NBInterface
	if err := c.doJSON(ctx, http.MethodPost, "/api/dcim/interfaces/", req, &iface); err != nil {
		return nil, fmt.Errorf("create interface: %w", err)
	}
	return &iface, nil
}

// FindIPAddress looks up an IP address by its CIDR string. Returns nil when absent.
func (c *Client) FindIPAddress(ctx context.Context, address string) (*NBIPAddress, error) {
	return findOne[NBIPAddress](ctx, c, "/api/ipam/ip-addresses/", url.Values{"address": {address}})
}

// CreateIPAddress creates an IP address, unassigned.
func (c *Client) CreateIPAddress(ctx context.Context, address string) (*NBIPAddress, error) {
	req := NBIPAddressCreateRequest{Address: address}
	var ip NBIPAddress
	if err := c.doJSON(ctx, http.MethodPost, "/api/ipam/ip-addresses/", req, &ip); err != nil {
		return nil, fmt.Errorf("create ip address: %w", err)
	}
	return &ip, nil
}

// AssignIPAddress binds an existing IP address to an interface.
func (c *Client) AssignIPAddress(ctx context.Context, ipID, interfaceID int) (*NBIPAddress, error) {
	path := fmt.Sprintf("/api/ipam/ip-addresses/%d/", ipID)
	body := map[string]any{
		"assigned_object_type": "dcim.interface",
		"assigned_object_id":   interfaceID,
	}
	var ip NBIPAddress
	if err := c.doJSON(ctx, http.MethodPatch, path, body, &ip); err != nil {
		return nil, fmt.Errorf("assign ip address %d: %w", ipID, err)
	}
	return &ip, nil
}

// findOne performs a filtered list request and returns the first result, or
// nil when the filter matched nothing.
func findOne[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	var resp ListResponse[T]
	if err := c.doJSON(ctx, http.MethodGet, path+"?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	if resp.Count == 0 || len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

func setIDFilter(q url.Values, key string, id int) {
	if id > 0 {
		q.Set(key, fmt.Sprintf("%d", id))
	}
}

// doJSON performs an HTTP request with JSON serialization/deserialization.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("netbox API %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
