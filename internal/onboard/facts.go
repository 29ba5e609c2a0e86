package onboard

import "github.com/HerbHall/gangway/internal/driver"

// DeviceFacts is the normalized output of fact collection: identity
// fields plus the raw interface address map used for management
// interface correlation.
type DeviceFacts struct {
	Hostname     string
	Vendor       string // title-cased
	Model        string // lower-cased
	SerialNumber string // passed through unmodified
	InterfaceIPs driver.InterfaceIPs
}

// ManagementBinding names the interface that carries the address used to
// reach the device, with its prefix length.
type ManagementBinding struct {
	InterfaceName string
	PrefixLength  int
}
