package cli

import (
	"fmt"
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("MINES_SERVER", "http://localhost:8080"),
		Output:    "text",
		Verbose:   false,
	}
}

// Validate checks flag values
func (c *Config) Validate() error {
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
