package config

const (
	defaultConfigPath         = "~/.config/dmg-license/config.toml"
	projectConfigName         = "dmg-license.toml"
	defaultHDIUtilBinary      = "hdiutil"
	defaultHDIUtilTimeout     = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMaxConcurrentLoads = 8
	defaultConversionCache    = 64
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		HDIUtil: HDIUtil{
			Binary:         defaultHDIUtilBinary,
			TimeoutSeconds: defaultHDIUtilTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Assembly: Assembly{
			MaxConcurrentLoads:  defaultMaxConcurrentLoads,
			ConversionCacheSize: defaultConversionCache,
		},
	}
}
