package cli

import (
	"fmt"
	"os"
	"time"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Timeout   time.Duration
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BLOCKCTL_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("BLOCKCTL_OUTPUT", OutputText),
		Timeout:   30 * time.Second,
		Verbose:   false,
	}
}

// Validate rejects an unknown output format or a non-positive timeout
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q: must be %s or %s", c.Output, OutputText, OutputJSON)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
