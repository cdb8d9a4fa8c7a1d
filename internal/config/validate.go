package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBinding(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateBinding() error {
	if !ValidEncoder(c.Binding.Encoder) {
		return fmt.Errorf("binding.encoder: invalid encoder %q (valid encoders: %s)",
			c.Binding.Encoder, strings.Join(Encoders, ", "))
	}
	if c.Binding.BitrateKbps < 0 {
		return errors.New("binding.bitrate_kbps must not be negative")
	}
	if len(c.Binding.Extensions) == 0 {
		return errors.New("binding.extensions must list at least one audio extension")
	}
	for _, ext := range c.Binding.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("binding.extensions: invalid extension %q", ext)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// ValidEncoder reports whether name is one of the accepted encoders.
func ValidEncoder(name string) bool {
	for _, encoder := range Encoders {
		if name == encoder {
			return true
		}
	}
	return false
}
