package onboard

import "time"

// Config holds the onboarding policy knobs.
type Config struct {
	CreateManufacturerIfMissing bool          `mapstructure:"create_manufacturer_if_missing"`
	CreateDeviceTypeIfMissing   bool          `mapstructure:"create_device_type_if_missing"`
	CreatePlatformIfMissing     bool          `mapstructure:"create_platform_if_missing"`
	CreateDeviceRoleIfMissing   bool          `mapstructure:"create_device_role_if_missing"`
	DefaultDeviceRole           string        `mapstructure:"default_device_role"`
	DefaultTimeout              time.Duration `mapstructure:"default_timeout"`
	SNMPCommunity               string        `mapstructure:"snmp_community"` // empty disables the SNMP fingerprint fallback
}

// DefaultConfig returns a Config with sensible defaults: entity creation
// enabled across the board and a generic default role.
func DefaultConfig() Config {
	return Config{
		CreateManufacturerIfMissing: true,
		CreateDeviceTypeIfMissing:   true,
		CreatePlatformIfMissing:     true,
		CreateDeviceRoleIfMissing:   true,
		DefaultDeviceRole:           "network",
		DefaultTimeout:              30 * time.Second,
	}
}

// Credentials are the device login credentials used when a request does
// not carry its own. Resolved from configuration (or the process
// environment via the GANGWAY_DEVICE_* variables).
type Credentials struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	SSHPort  int    `mapstructure:"ssh_port"`
}
