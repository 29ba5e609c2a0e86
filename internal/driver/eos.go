package driver

import (
	"fmt"
	"regexp"
	"strings"
)

func init() {
	Register("eos", func(t Target) Driver {
		return &cliDriver{
			conn:        newSSHConn(t),
			factsCmds:   []string{"show version", "show hostname"},
			parseFacts:  parseEOSFacts,
			ifaceCmd:    "show ip interface",
			parseIfaces: parseIOSInterfaceIPs, // EOS mirrors the IOS output shape
		}
	})
}

var (
	eosModelRe    = regexp.MustCompile(`(?m)^\s*Arista (\S+)`)
	eosSerialRe   = regexp.MustCompile(`(?i)Serial number:\s+(\S+)`)
	eosVersionRe  = regexp.MustCompile(`(?i)Software image version:\s+(\S+)`)
	eosHostnameRe = regexp.MustCompile(`(?i)Hostname:\s+(\S+)`)
)

// parseEOSFacts extracts identity fields from EOS "show version" and
// "show hostname" outputs, in that order.
func parseEOSFacts(outputs []string) (*Facts, error) {
	versionOut := outputs[0]
	facts := &Facts{Vendor: "Arista"}

	if m := eosModelRe.FindStringSubmatch(versionOut); m != nil {
		facts.Model = m[1]
	}
	if m := eosSerialRe.FindStringSubmatch(versionOut); m != nil {
		facts.SerialNumber = m[1]
	}
	if m := eosVersionRe.FindStringSubmatch(versionOut); m != nil {
		facts.OSVersion = m[1]
	}

	if len(outputs) > 1 {
		hostOut := outputs[1]
		if m := eosHostnameRe.FindStringSubmatch(hostOut); m != nil {
			facts.Hostname = m[1]
		} else if fields := strings.Fields(hostOut); len(fields) > 0 {
			facts.Hostname = fields[0]
		}
	}

	if facts.Hostname == "" || facts.Model == "" {
		return nil, fmt.Errorf("unrecognized show version output")
	}
	return facts, nil
}
