package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-odds/internal/odds"
	"github.com/lox/holdem-odds/internal/session"
)

// Config represents the complete odds service configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Engine EngineSettings `hcl:"engine,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// EngineSettings configures the odds engine behind each connection
type EngineSettings struct {
	Iterations      int     `hcl:"iterations,optional"`
	Cost            float64 `hcl:"cost,optional"`
	RefreshInterval string  `hcl:"refresh_interval,optional"`
}

// DefaultConfig returns the default service configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Engine: EngineSettings{
			Iterations:      odds.DefaultIterations,
			Cost:            odds.DefaultCost,
			RefreshInterval: session.DefaultRefreshInterval.String(),
		},
	}
}

// LoadConfig loads service configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Engine.Iterations == 0 {
		config.Engine.Iterations = defaults.Engine.Iterations
	}
	if config.Engine.Cost == 0 {
		config.Engine.Cost = defaults.Engine.Cost
	}
	if config.Engine.RefreshInterval == "" {
		config.Engine.RefreshInterval = defaults.Engine.RefreshInterval
	}

	return &config, nil
}

// Validate validates the service configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Engine.Iterations < 1 {
		return fmt.Errorf("iterations must be positive: %d", c.Engine.Iterations)
	}
	if c.Engine.Cost < 0 {
		return fmt.Errorf("cost must be non-negative: %f", c.Engine.Cost)
	}
	if _, err := c.RefreshInterval(); err != nil {
		return fmt.Errorf("invalid refresh_interval: %w", err)
	}
	return nil
}

// RefreshInterval parses the configured refresh interval
func (c *Config) RefreshInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Engine.RefreshInterval)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive: %s", c.Engine.RefreshInterval)
	}
	return d, nil
}

// ListenAddress returns the full host:port the server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
