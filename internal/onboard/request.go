package onboard

import (
	"net"
	"time"
)

// Request describes one device to onboard. It is immutable input to the
// pipeline; stages return derived values rather than mutating it.
type Request struct {
	IPAddress string        `json:"ip_address"`         // management address to reach the device at
	Port      int           `json:"port,omitempty"`     // TCP port of the management endpoint (default 22)
	Timeout   time.Duration `json:"timeout,omitempty"`  // per-connection timeout (reachability check and driver session)
	Platform  string        `json:"platform,omitempty"` // optional explicit platform identifier; skips fingerprinting
	Role      string        `json:"role,omitempty"`     // optional device role slug; empty uses the configured default
	Site      string        `json:"site"`               // site slug the device belongs to
	Username  string        `json:"username,omitempty"` // device credentials; empty falls back to configured defaults
	Password  string        `json:"password,omitempty"`
}

// normalized returns a copy of r with defaults applied from cfg and creds.
func (r Request) normalized(cfg Config, creds Credentials) Request {
	out := r
	if out.Port == 0 {
		out.Port = creds.SSHPort
	}
	if out.Port == 0 {
		out.Port = 22
	}
	if out.Timeout == 0 {
		out.Timeout = cfg.DefaultTimeout
	}
	if out.Username == "" {
		out.Username = creds.Username
	}
	if out.Password == "" {
		out.Password = creds.Password
	}
	return out
}

// validate checks the request for the fields every run requires.
func (r Request) validate() error {
	if r.IPAddress == "" {
		return Errorf(ReasonConfig, "ip_address is required")
	}
	if net.ParseIP(r.IPAddress) == nil {
		return Errorf(ReasonConfig, "invalid ip_address %q", r.IPAddress)
	}
	if r.Site == "" {
		return Errorf(ReasonConfig, "site is required")
	}
	if r.Username == "" || r.Password == "" {
		return Errorf(ReasonConfig, "device credentials are required (set device.username and device.password or pass them in the request)")
	}
	return nil
}
