package driver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func init() {
	Register("ios", func(t Target) Driver {
		return &cliDriver{
			conn:        newSSHConn(t),
			factsCmds:   []string{"show version"},
			parseFacts:  parseIOSFacts,
			ifaceCmd:    "show ip interface",
			parseIfaces: parseIOSInterfaceIPs,
		}
	})
	// IOS XR shares the classic IOS output shapes that matter here.
	Register("iosxr", func(t Target) Driver {
		return &cliDriver{
			conn:        newSSHConn(t),
			factsCmds:   []string{"show version"},
			parseFacts:  parseIOSFacts,
			ifaceCmd:    "show ipv4 interface",
			parseIfaces: parseIOSInterfaceIPs,
		}
	})
	Register("nxos_ssh", func(t Target) Driver {
		return &cliDriver{
			conn:        newSSHConn(t),
			factsCmds:   []string{"show version"},
			parseFacts:  parseNXOSFacts,
			ifaceCmd:    "show ip interface vrf all",
			parseIfaces: parseNXOSInterfaceIPs,
		}
	})
}

var (
	iosHostnameRe = regexp.MustCompile(`(?m)^(\S+) uptime is`)
	iosSerialRe   = regexp.MustCompile(`(?i)Processor board ID (\S+)`)
	iosModelRe    = regexp.MustCompile(`(?im)^cisco ([\w./-]+) \(`)
	iosVersionRe  = regexp.MustCompile(`Version ([^,\s]+)`)

	ifHeaderRe = regexp.MustCompile(`^(\S+) is `)
	inetAddrRe = regexp.MustCompile(`Internet address is (\d+\.\d+\.\d+\.\d+)/(\d+)`)

	nxosHostnameRe = regexp.MustCompile(`(?i)Device name:\s+(\S+)`)
	nxosModelRe    = regexp.MustCompile(`(?im)^\s*cisco (\S+(?: \S+)?) [Cc]hassis`)
	nxosSerialRe   = regexp.MustCompile(`(?i)Processor Board ID (\S+)`)
	nxosVersionRe  = regexp.MustCompile(`(?i)NXOS:\s+version (\S+)`)

	nxosIfHeaderRe = regexp.MustCompile(`^(\S+), Interface status:`)
	nxosAddrRe     = regexp.MustCompile(`IP address: (\d+\.\d+\.\d+\.\d+), IP subnet: \d+\.\d+\.\d+\.\d+/(\d+)`)
)

// parseIOSFacts extracts identity fields from IOS "show version" output.
func parseIOSFacts(outputs []string) (*Facts, error) {
	out := outputs[0]
	facts := &Facts{Vendor: "Cisco"}

	if m := iosHostnameRe.FindStringSubmatch(out); m != nil {
		facts.Hostname = m[1]
	}
	if m := iosModelRe.FindStringSubmatch(out); m != nil {
		facts.Model = m[1]
	}
	if m := iosSerialRe.FindStringSubmatch(out); m != nil {
		facts.SerialNumber = m[1]
	}
	if m := iosVersionRe.FindStringSubmatch(out); m != nil {
		facts.OSVersion = m[1]
	}

	if facts.Hostname == "" || facts.Model == "" {
		return nil, fmt.Errorf("unrecognized show version output")
	}
	return facts, nil
}

// parseIOSInterfaceIPs parses IOS "show ip interface" output: interface
// header lines followed by indented "Internet address is a.b.c.d/len" lines.
func parseIOSInterfaceIPs(out string) (InterfaceIPs, error) {
	ips := make(InterfaceIPs)
	var current string

	for _, line := range strings.Split(out, "\n") {
		if m := ifHeaderRe.FindStringSubmatch(line); m != nil {
			current = m[1]
			continue
		}
		if current == "" {
			continue
		}
		if m := inetAddrRe.FindStringSubmatch(line); m != nil {
			pflen, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("prefix length %q: %w", m[2], err)
			}
			if ips[current] == nil {
				ips[current] = make(map[string]IPv4Addr)
			}
			ips[current][m[1]] = IPv4Addr{PrefixLength: pflen}
		}
	}
	return ips, nil
}

// parseNXOSFacts extracts identity fields from NX-OS "show version" output.
func parseNXOSFacts(outputs []string) (*Facts, error) {
	out := outputs[0]
	facts := &Facts{Vendor: "Cisco"}

	if m := nxosHostnameRe.FindStringSubmatch(out); m != nil {
		facts.Hostname = m[1]
	}
	if m := nxosModelRe.FindStringSubmatch(out); m != nil {
		facts.Model = strings.ReplaceAll(m[1], " ", "-")
	}
	if m := nxosSerialRe.FindStringSubmatch(out); m != nil {
		facts.SerialNumber = m[1]
	}
	if m := nxosVersionRe.FindStringSubmatch(out); m != nil {
		facts.OSVersion = m[1]
	}

	if facts.Hostname == "" || facts.Model == "" {
		return nil, fmt.Errorf("unrecognized show version output")
	}
	return facts, nil
}

// parseNXOSInterfaceIPs parses NX-OS "show ip interface vrf all" output.
func parseNXOSInterfaceIPs(out string) (InterfaceIPs, error) {
	ips := make(InterfaceIPs)
	var current string

	for _, line := range strings.Split(out, "\n") {
		if m := nxosIfHeaderRe.FindStringSubmatch(line); m != nil {
			current = m[1]
			continue
		}
		if current == "" {
			continue
		}
		if m := nxosAddrRe.FindStringSubmatch(line); m != nil {
			pflen, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("prefix length %q: %w", m[2], err)
			}
			if ips[current] == nil {
				ips[current] = make(map[string]IPv4Addr)
			}
			ips[current][m[1]] = IPv4Addr{PrefixLength: pflen}
		}
	}
	return ips, nil
}
