// Package config loads Gangway configuration from file and environment
// and constructs the process logger.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables.
// When configPath is empty, gangway.yaml is searched in the working
// directory, ./configs and /etc/gangway.
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.path", "./data/gangway.db")

	v.SetDefault("netbox.url", "")
	v.SetDefault("netbox.token", "")
	v.SetDefault("netbox.timeout", "30s")

	v.SetDefault("device.username", "")
	v.SetDefault("device.password", "")
	v.SetDefault("device.ssh_port", 22)

	v.SetDefault("onboarding.create_manufacturer_if_missing", true)
	v.SetDefault("onboarding.create_device_type_if_missing", true)
	v.SetDefault("onboarding.create_platform_if_missing", true)
	v.SetDefault("onboarding.create_device_role_if_missing", true)
	v.SetDefault("onboarding.default_device_role", "network")
	v.SetDefault("onboarding.default_timeout", "30s")
	v.SetDefault("onboarding.snmp_community", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("gangway")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/gangway")
	}

	// Environment variable support: GANGWAY_NETBOX_TOKEN=...
	v.SetEnvPrefix("GANGWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}

// UnmarshalKey decodes the settings under key into out. Viper's own
// UnmarshalKey reads the raw settings map and misses values that only
// exist as environment overrides; this resolves every registered key
// through Get, which does consult the environment.
func UnmarshalKey(v *viper.Viper, key string, out any) error {
	sub := viper.New()
	prefix := key + "."
	for _, k := range v.AllKeys() {
		if strings.HasPrefix(k, prefix) {
			sub.Set(strings.TrimPrefix(k, prefix), v.Get(k))
		}
	}
	if err := sub.Unmarshal(out); err != nil {
		return fmt.Errorf("decoding %s config: %w", key, err)
	}
	return nil
}
