package onboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

// oidSysDescr is the SNMPv2-MIB sysDescr scalar.
const oidSysDescr = "1.3.6.1.2.1.1.1.0"

// fetchSysDescr retrieves sysDescr from the device over SNMPv2c. Used as
// a fingerprinting fallback when the SSH banner yields no match.
func fetchSysDescr(ctx context.Context, host, community string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	g := &gosnmp.GoSNMP{
		Target:    host,
		Port:      161,
		Version:   gosnmp.Version2c,
		Community: community,
		Timeout:   timeout,
		Retries:   1,
	}

	if err := g.Connect(); err != nil {
		return "", fmt.Errorf("snmp connect %s: %w", host, err)
	}
	defer g.Conn.Close()

	result, err := g.Get([]string{oidSysDescr})
	if err != nil {
		return "", fmt.Errorf("snmp get sysDescr from %s: %w", host, err)
	}

	for _, v := range result.Variables {
		if v.Type == gosnmp.OctetString {
			if b, ok := v.Value.([]byte); ok {
				return string(b), nil
			}
		}
	}
	return "", fmt.Errorf("no sysDescr value returned by %s", host)
}
