package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeHDIUtil()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeAssembly()
	return nil
}

func (c *Config) normalizeHDIUtil() {
	c.HDIUtil.Binary = strings.TrimSpace(c.HDIUtil.Binary)
	if c.HDIUtil.Binary == "" {
		c.HDIUtil.Binary = defaultHDIUtilBinary
	}
	if c.HDIUtil.TimeoutSeconds == 0 {
		c.HDIUtil.TimeoutSeconds = defaultHDIUtilTimeout
	}
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "pretty", "text":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	default:
		c.Logging.Level = level
	}

	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func (c *Config) normalizeAssembly() {
	if c.Assembly.MaxConcurrentLoads == 0 {
		c.Assembly.MaxConcurrentLoads = defaultMaxConcurrentLoads
	}
	if c.Assembly.ConversionCacheSize == 0 {
		c.Assembly.ConversionCacheSize = defaultConversionCache
	}
}
