package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHDIUtil(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateAssembly()
}

func (c *Config) validateHDIUtil() error {
	if c.HDIUtil.Binary == "" {
		return errors.New("hdiutil.binary must be set")
	}
	if c.HDIUtil.TimeoutSeconds <= 0 {
		return errors.New("hdiutil.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateAssembly() error {
	if c.Assembly.MaxConcurrentLoads < 1 {
		return errors.New("assembly.max_concurrent_loads must be at least 1")
	}
	if c.Assembly.ConversionCacheSize < 1 {
		return errors.New("assembly.conversion_cache_size must be at least 1")
	}
	return nil
}
