package netbox

import "time"

// Config holds the NetBox connection configuration.
type Config struct {
	URL     string        `mapstructure:"url"`     // NetBox base URL (e.g., "https://netbox.example.com")
	Token   string        `mapstructure:"token"`   // API token
	Timeout time.Duration `mapstructure:"timeout"` // HTTP client timeout (default: 30s)
}

// DefaultConfig returns a Config with sensible defaults.
// URL is empty, meaning onboarding cannot run until configured.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}
