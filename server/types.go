// File: server/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server-side configuration parameters.
type Config struct {
	Addr            string        `yaml:"addr"`             // TCP bind address, e.g. "127.0.0.1:8000"
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // deadline for receiving the request head
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // deadline for writing the response
	HandlerTimeout  time.Duration `yaml:"handler_timeout"`  // deadline on the handler's request context
	MaxHeaderBytes  int           `yaml:"max_header_bytes"` // cap on request line plus headers
	ReadBufferSize  int           `yaml:"read_buffer_size"` // size of each socket read
	Workers         int           `yaml:"workers"`          // connection worker goroutines
	Backlog         int           `yaml:"backlog"`          // connections waiting for a worker
	MaxConnections  int           `yaml:"max_connections"`  // open connection cap, 0 = unlimited
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // graceful shutdown budget
	Log             LogConfig     `yaml:"log"`
}

// LogConfig selects the logger built by the command line front end.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "127.0.0.1:8000",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		HandlerTimeout:  10 * time.Second,
		MaxHeaderBytes:  8 * 1024,
		ReadBufferSize:  1024,
		Workers:         runtime.NumCPU() * 4,
		Backlog:         1024,
		MaxConnections:  0,
		ShutdownTimeout: 30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("addr must be set")
	case c.ReadTimeout <= 0:
		return fmt.Errorf("read_timeout must be positive, got %s", c.ReadTimeout)
	case c.WriteTimeout <= 0:
		return fmt.Errorf("write_timeout must be positive, got %s", c.WriteTimeout)
	case c.HandlerTimeout <= 0:
		return fmt.Errorf("handler_timeout must be positive, got %s", c.HandlerTimeout)
	case c.MaxHeaderBytes <= 0:
		return fmt.Errorf("max_header_bytes must be positive, got %d", c.MaxHeaderBytes)
	case c.ReadBufferSize <= 0:
		return fmt.Errorf("read_buffer_size must be positive, got %d", c.ReadBufferSize)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.Backlog < 0:
		return fmt.Errorf("backlog must not be negative, got %d", c.Backlog)
	case c.MaxConnections < 0:
		return fmt.Errorf("max_connections must not be negative, got %d", c.MaxConnections)
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
