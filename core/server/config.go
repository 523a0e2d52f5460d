package server

import "fmt"

// Config holds configuration for the optional status HTTP server.
type Config struct {
	// Enabled starts the status server next to the reconciliation loop.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// Validate checks the port when the server is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	var port int
	if _, err := fmt.Sscanf(c.Port, "%d", &port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("server.port: invalid port %q", c.Port)
	}
	return nil
}
