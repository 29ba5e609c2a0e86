package netbox

// NetBox API request/response types.
// These mirror the NetBox REST API entity shapes used during onboarding.

// NBSite represents a NetBox site (data center / location).
type NBSite struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

// NBManufacturer represents a NetBox manufacturer.
type NBManufacturer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url,omitempty"`
}

// NBDeviceType represents a NetBox device type (hardware model).
type NBDeviceType struct {
	ID           int             `json:"id"`
	Manufacturer *NBManufacturer `json:"manufacturer,omitempty"`
	Model        string          `json:"model"`
	Slug         string          `json:"slug"`
	URL          string          `json:"url,omitempty"`
}

// NBDeviceRole represents a NetBox device role (functional purpose).
type NBDeviceRole struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color,omitempty"`
	URL   string `json:"url,omitempty"`
}

// NBPlatform represents a NetBox platform (vendor operating system family)
// together with the automation driver used to talk to devices running it.
type NBPlatform struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	NapalmDriver string `json:"napalm_driver,omitempty"`
	URL          string `json:"url,omitempty"`
}

// NBDevice represents a NetBox device entity.
type NBDevice struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	DeviceType *NBDeviceType `json:"device_type,omitempty"`
	Role       *NBDeviceRole `json:"role,omitempty"`
	Platform   *NBPlatform   `json:"platform,omitempty"`
	Site       *NBSite       `json:"site,omitempty"`
	Serial     string        `json:"serial,omitempty"`
	PrimaryIP4 *NBIPAddress  `json:"primary_ip4,omitempty"`
	URL        string        `json:"url,omitempty"`
}

// NBInterface represents a NetBox device interface.
type NBInterface struct {
	ID     int       `json:"id"`
	Device *NBDevice `json:"device,omitempty"`
	Name   string    `json:"name"`
	URL    string    `json:"url,omitempty"`
}

// NBIPAddress represents a NetBox IP address assignment.
type NBIPAddress struct {
	ID                 int    `json:"id"`
	Address            string `json:"address"`
	AssignedObjectType string `json:"assigned_object_type,omitempty"`
	AssignedObjectID   int    `json:"assigned_object_id,omitempty"`
	URL                string `json:"url,omitempty"`
}

// ListResponse is the generic paginated response from NetBox list endpoints.
type ListResponse[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

// NBDeviceCreateRequest is the payload for creating a NetBox device.
type NBDeviceCreateRequest struct {
	Name       string `json:"name"`
	DeviceType int    `json:"device_type"`
	Role       int    `json:"role"`
	Platform   int    `json:"platform,omitempty"`
	Site       int    `json:"site"`
	Status     string `json:"status"`
	Serial     string `json:"serial,omitempty"`
}

// NBInterfaceCreateRequest is the payload for creating a NetBox interface.
type NBInterfaceCreateRequest struct {
	Device int    `json:"device"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

// NBIPAddressCreateRequest is the payload for creating a NetBox IP address.
type NBIPAddressCreateRequest struct {
	Address            string `json:"address"`
	AssignedObjectType string `json:"assigned_object_type,omitempty"`
	AssignedObjectID   int    `json:"assigned_object_id,omitempty"`
}
