package onboard

import (
	"sort"

	"github.com/HerbHall/gangway/internal/driver"
)

// ResolveManagementInterface correlates the address used to reach the
// device against the collected interface map and returns the managing
// interface name with its prefix length. Interface names are scanned in
// sorted order so a duplicate address (which should not occur) still
// resolves deterministically. No interface carrying the address is
// fail-general: the device cannot be correlated to a management
// interface.
func ResolveManagementInterface(ipIfs driver.InterfaceIPs, managementIP string) (ManagementBinding, error) {
	names := make([]string, 0, len(ipIfs))
	for name := range ipIfs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if addr, ok := ipIfs[name][managementIP]; ok {
			return ManagementBinding{InterfaceName: name, PrefixLength: addr.PrefixLength}, nil
		}
	}
	return ManagementBinding{}, Errorf(ReasonGeneral, "no interface on the device carries management address %s", managementIP)
}
