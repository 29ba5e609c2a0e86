package onboard

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// platformFingerprints maps "show version" output to canonical platform
// identifiers. Ordered most-specific first: IOS XR and NX-OS banners
// also mention "Cisco", so the classic IOS patterns come after them.
var platformFingerprints = []struct {
	platform string
	pattern  *regexp.Regexp
}{
	{"cisco_xr", regexp.MustCompile(`Cisco IOS XR`)},
	{"cisco_nxos", regexp.MustCompile(`Cisco Nexus Operating System|NX-OS`)},
	{"cisco_ios", regexp.MustCompile(`Cisco IOS Software|Cisco Internetwork Operating System`)},
	{"arista_eos", regexp.MustCompile(`Arista`)},
	{"juniper_junos", regexp.MustCompile(`JUNOS|Junos[:\s]`)},
}

// Detector determines the canonical platform identifier for a device,
// either from an explicit hint on the request or by protocol
// fingerprinting (SSH first, SNMP as an optional fallback).
type Detector struct {
	cfg    Config
	logger *zap.Logger

	// sshShowVersion runs "show version" over a fresh SSH session.
	// Defaults to a real SSH dial; overridden in tests.
	sshShowVersion func(ctx context.Context, req Request) (string, error)

	// snmpSysDescr fetches sysDescr via SNMP. Defaults to a gosnmp
	// query; overridden in tests.
	snmpSysDescr func(ctx context.Context, host, community string, timeout time.Duration) (string, error)
}

// NewDetector creates a platform detector.
func NewDetector(cfg Config, logger *zap.Logger) *Detector {
	d := &Detector{cfg: cfg, logger: logger}
	d.sshShowVersion = d.runShowVersion
	d.snmpSysDescr = fetchSysDescr
	return d
}

// Detect returns the canonical platform identifier for the request's
// device. An explicit hint is returned verbatim with no network
// interaction. Failure mapping: authentication -> fail-login,
// connection/protocol -> fail-connect, no confident match -> fail-general.
func (d *Detector) Detect(ctx context.Context, req Request) (string, error) {
	if req.Platform != "" {
		return req.Platform, nil
	}

	out, err := d.sshShowVersion(ctx, req)
	if err == nil {
		if platform := matchPlatform(out); platform != "" {
			d.logger.Info("platform fingerprinted over ssh",
				zap.String("ip", req.IPAddress),
				zap.String("platform", platform),
			)
			return platform, nil
		}
		d.logger.Debug("ssh banner matched no known platform", zap.String("ip", req.IPAddress))
		err = Errorf(ReasonGeneral, "unable to determine platform for %s", req.IPAddress)
	}

	// Credential rejection and unreachability are terminal; an SNMP
	// retry with the same target would not change either.
	switch ReasonOf(err) {
	case ReasonLogin, ReasonConnect:
		return "", err
	}

	if d.cfg.SNMPCommunity != "" {
		descr, snmpErr := d.snmpSysDescr(ctx, req.IPAddress, d.cfg.SNMPCommunity, req.Timeout)
		if snmpErr != nil {
			d.logger.Debug("snmp fingerprint fallback failed",
				zap.String("ip", req.IPAddress),
				zap.Error(snmpErr),
			)
			return "", err
		}
		if platform := matchPlatform(descr); platform != "" {
			d.logger.Info("platform fingerprinted over snmp",
				zap.String("ip", req.IPAddress),
				zap.String("platform", platform),
			)
			return platform, nil
		}
	}

	return "", err
}

// matchPlatform returns the first fingerprint matching the output, or
// empty when nothing matches confidently.
func matchPlatform(out string) string {
	for _, fp := range platformFingerprints {
		if fp.pattern.MatchString(out) {
			return fp.platform
		}
	}
	return ""
}

// runShowVersion opens an SSH session against the request's device and
// returns the raw "show version" output.
func (d *Detector) runShowVersion(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", WrapErr(ReasonConnect, err, "detection canceled")
	}

	addr := net.JoinHostPort(req.IPAddress, strconv.Itoa(req.Port))
	cfg := &ssh.ClientConfig{
		User: req.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(req.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // G106: onboarding targets are operator-supplied
		Timeout:         req.Timeout,
	}

	client, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		if strings.Contains(err.Error(), "unable to authenticate") ||
			strings.Contains(err.Error(), "no supported methods remain") {
			return "", WrapErr(ReasonLogin, err, "authentication rejected by %s", addr)
		}
		return "", WrapErr(ReasonConnect, err, "ssh connect %s failed", addr)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", WrapErr(ReasonConnect, err, "ssh session to %s failed", addr)
	}
	defer session.Close()

	// The session is up and authenticated at this point, so a failed
	// command is neither a connect nor a login problem.
	out, err := session.Output("show version")
	if err != nil {
		return "", WrapErr(ReasonGeneral, err, "show version on %s failed", addr)
	}
	return string(out), nil
}
