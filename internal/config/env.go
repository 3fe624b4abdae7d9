package config

import (
	"os"
	"strconv"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "NPLAY_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "NPLAY_CONFIG_PLAYER_SOCKET_PATH",
		desc:  "Sets the socket (or named pipe) the engine listens on.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Player.SocketPath = s },
	},
	{
		name:  "NPLAY_CONFIG_PLAYER_ENGINE_PATH",
		desc:  "Sets the path to an engine binary nplay should launch.  Default: None, connect to a running engine",
		apply: func(c *Config, s string) { c.Player.EnginePath = s },
	},
	{
		name:  "NPLAY_CONFIG_PLAYER_ENGINE_ARGS",
		desc:  "Sets extra arguments passed to the engine binary.  Default: None",
		apply: func(c *Config, s string) { c.Player.EngineArgs = s },
	},
	{
		name:  "NPLAY_CONFIG_PLAYER_CONNECT_ATTEMPTS",
		desc:  "Sets how many times to try reaching the engine socket.  Default: 20",
		apply: intSetter(func(c *Config, v int) { c.Player.ConnectAttempts = v }),
	},
	{
		name:  "NPLAY_CONFIG_PLAYER_CONNECT_RETRY_MS",
		desc:  "Sets the delay between connection attempts in milliseconds.  Default: 500",
		apply: intSetter(func(c *Config, v int) { c.Player.ConnectRetryMs = v }),
	},
	{
		name: "NPLAY_CONFIG_UI_SEEK_STEP",
		desc: "Sets the seconds skipped by one forward/rewind press.  Default: 5",
		apply: func(c *Config, s string) {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				c.UI.SeekStep = v
			}
		},
	},
	{
		name:  "NPLAY_CONFIG_UI_SEEK_WINDOW_MS",
		desc:  "Sets the quiet period before repeated seeks are sent, in milliseconds.  Default: 2000",
		apply: intSetter(func(c *Config, v int) { c.UI.SeekWindowMs = v }),
	},
	{
		name:  "NPLAY_CONFIG_UI_RETURN_PASSTHROUGH",
		desc:  "When true the return key quits nplay from the menu.  Default: false",
		apply: boolSetter(func(c *Config, v bool) { c.UI.ReturnPassthrough = v }),
	},
	{
		name:  "NPLAY_CONFIG_UI_HIDE_SUBTITLE_MENU",
		desc:  "When true the menu does not offer subtitle track selection.  Default: false",
		apply: boolSetter(func(c *Config, v bool) { c.UI.HideSubtitleMenu = v }),
	},
	{
		name:  "NPLAY_CONFIG_CATALOG_PATH",
		desc:  "Sets the path to a YAML clip catalog.  Default: None, built-in clips",
		apply: func(c *Config, s string) { c.Catalog.Path = s },
	},
	{
		name:  "NPLAY_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: trace, debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "NPLAY_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
	{
		name:  "NPLAY_CONFIG_LOGGING_NATIVE_LEVEL",
		desc:  "Sets the log verbosity requested from the engine.  One of: none, error, info, debug.  Default: info",
		apply: func(c *Config, s string) { c.Logging.NativeLevel = s },
	},
}

// Values that do not parse are ignored and the previous setting kept
func intSetter(set func(*Config, int)) func(*Config, string) {
	return func(c *Config, s string) {
		if v, err := strconv.Atoi(s); err == nil {
			set(c, v)
		}
	}
}

func boolSetter(set func(*Config, bool)) func(*Config, string) {
	return func(c *Config, s string) {
		if v, err := strconv.ParseBool(s); err == nil {
			set(c, v)
		}
	}
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}

// EnvVarHelp describes every supported environment variable, one per line
func EnvVarHelp() []string {
	help := make([]string, 0, len(supportedEnvVars))
	for _, envVar := range supportedEnvVars {
		help = append(help, envVar.name+": "+envVar.desc)
	}
	return help
}
