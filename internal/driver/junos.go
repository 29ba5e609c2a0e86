package driver

import (
	"fmt"
	"regexp"
	"strconv"
)

func init() {
	Register("junos", func(t Target) Driver {
		return &cliDriver{
			conn:        newSSHConn(t),
			factsCmds:   []string{"show version", "show chassis hardware"},
			parseFacts:  parseJunosFacts,
			ifaceCmd:    "show interfaces terse",
			parseIfaces: parseJunosInterfaceIPs,
		}
	})
}

var (
	junosHostnameRe = regexp.MustCompile(`(?m)^Hostname:\s+(\S+)`)
	junosModelRe    = regexp.MustCompile(`(?m)^Model:\s+(\S+)`)
	junosVersionRe  = regexp.MustCompile(`(?m)^Junos:\s+(\S+)`)
	junosChassisRe  = regexp.MustCompile(`(?m)^Chassis\s+(\S+)`)

	junosTerseRe = regexp.MustCompile(`(?m)^(\S+)\s+\S+\s+\S+\s+inet\s+(\d+\.\d+\.\d+\.\d+)/(\d+)`)
)

// parseJunosFacts extracts identity fields from Junos "show version" and
// "show chassis hardware" outputs, in that order.
func parseJunosFacts(outputs []string) (*Facts, error) {
	versionOut := outputs[0]
	facts := &Facts{Vendor: "Juniper"}

	if m := junosHostnameRe.FindStringSubmatch(versionOut); m != nil {
		facts.Hostname = m[1]
	}
	if m := junosModelRe.FindStringSubmatch(versionOut); m != nil {
		facts.Model = m[1]
	}
	if m := junosVersionRe.FindStringSubmatch(versionOut); m != nil {
		facts.OSVersion = m[1]
	}
	if len(outputs) > 1 {
		if m := junosChassisRe.FindStringSubmatch(outputs[1]); m != nil {
			facts.SerialNumber = m[1]
		}
	}

	if facts.Hostname == "" || facts.Model == "" {
		return nil, fmt.Errorf("unrecognized show version output")
	}
	return facts, nil
}

// parseJunosInterfaceIPs parses "show interfaces terse" lines carrying an
// inet family address.
func parseJunosInterfaceIPs(out string) (InterfaceIPs, error) {
	ips := make(InterfaceIPs)
	for _, m := range junosTerseRe.FindAllStringSubmatch(out, -1) {
		pflen, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("prefix length %q: %w", m[3], err)
		}
		if ips[m[1]] == nil {
			ips[m[1]] = make(map[string]IPv4Addr)
		}
		ips[m[1]][m[2]] = IPv4Addr{PrefixLength: pflen}
	}
	return ips, nil
}
