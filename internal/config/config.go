package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Player  PlayerConfig  `yaml:"player,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// PlayerConfig contains settings for reaching the playback engine
type PlayerConfig struct {
	SocketPath      string `yaml:"socket_path,omitempty"` // Empty means the OS-specific default
	EnginePath      string `yaml:"engine_path,omitempty"` // Empty means connect to an engine that is already running
	EngineArgs      string `yaml:"engine_args,omitempty"`
	ConnectAttempts int    `yaml:"connect_attempts,omitempty"`
	ConnectRetryMs  int    `yaml:"connect_retry_ms,omitempty"`
}

// UIConfig contains UI behaviour preferences
type UIConfig struct {
	SeekStep          float64 `yaml:"seek_step,omitempty"` // seconds
	SeekWindowMs      int     `yaml:"seek_window_ms,omitempty"`
	ReturnPassthrough bool    `yaml:"return_passthrough,omitempty"` // Return in the menu quits nplay
	HideSubtitleMenu  bool    `yaml:"hide_subtitle_menu,omitempty"`
	WindowWidth       int     `yaml:"window_width,omitempty"`
	WindowHeight      int     `yaml:"window_height,omitempty"`
	ScreenWidth       int     `yaml:"screen_width,omitempty"`
	ScreenHeight      int     `yaml:"screen_height,omitempty"`
}

// CatalogConfig points at an optional clip catalog file
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level       string `yaml:"level,omitempty"`
	FilePath    string `yaml:"file_path,omitempty"`
	NativeLevel string `yaml:"native_level,omitempty"` // Verbosity requested from the engine: none, error, info, debug
}

// ConnectRetryDelay is the wait between attempts to reach the engine socket
func (p PlayerConfig) ConnectRetryDelay() time.Duration {
	return time.Duration(p.ConnectRetryMs) * time.Millisecond
}

// SeekWindow is the quiet period after which repeated relative seeks are sent as one
func (u UIConfig) SeekWindow() time.Duration {
	return time.Duration(u.SeekWindowMs) * time.Millisecond
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Apply 'dynamic' properties.  Dynamic properties are those that are determined at runtime, for example log file location which is different per OS.
// 4. Load & merge the config file, overwriting any defaults with user-specified values
// 5. Apply environment variable overrides
func Load() (*Config, error) {
	// 1. Start with base defaults
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	// 2. If no config file exists on disk, then write a default one
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// If there is an error saving the default config, then still let the application startup using the defaults.
		_ = save(cfg, configPath)
	}

	// 3. Apply dynamic defaults if necessary
	applyDynamicDefaults(cfg)

	// 4. Load the config from disk and merge it into the base defaults
	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	// Overrides the config with any values coming from the loaded file.  Zero values in the file (false, 0, "") never
	// override a default, which is why every boolean defaults to false.
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	// 5. Apply the environment variable overrides which take precedence
	applyEnvVarOverrides(cfg)

	return cfg, nil
}

// applyDynamicDefaults sets runtime-determined default values for any properties that haven't been explicitly configured.
// Unlike static defaults, these values might change between runs based on the environment or system configuration.
func applyDynamicDefaults(cfg *Config) {
	cfg.Logging.FilePath = defaultLogFilePath()
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

func save(cfg *Config, configPath string) error {
	// Create config dir if not exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// UpdateConfig reads the existing config, applies the update function, and saves it back to disk
func UpdateConfig(updateFn func(*Config)) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("unable to determine config file path: %w", err)
	}

	cfg, err := loadFromDisk(configPath)
	if err != nil {
		return fmt.Errorf("error loading config file from disk: %w", err)
	}

	// Apply the updates
	updateFn(cfg)

	return save(cfg, configPath)
}

// Path returns the location of the config file that Load reads
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else tries
// to use OS config location defaults.
func getConfigPath() (string, error) {
	configPath := os.Getenv("NPLAY_CONFIG_PATH")
	if configPath != "" {
		return configPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "nplay", "config.yaml"), nil
}

// createBaseDefaultConfig creates a config with all default values
func createBaseDefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			ConnectAttempts: 20,
			ConnectRetryMs:  500,
		},
		UI: UIConfig{
			SeekStep:     5,
			SeekWindowMs: 2000,
			WindowWidth:  1280,
			WindowHeight: 720,
			ScreenWidth:  1920,
			ScreenHeight: 1080,
		},
		Catalog: CatalogConfig{},
		Logging: LoggingConfig{
			Level:       "info",
			NativeLevel: "info",
		},
	}
}

// defaultLogFilePath returns the path to the log file.  Tries to use expected OS location defaults.
func defaultLogFilePath() string {
	var basePath string
	homedir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to logging in the current directory if home directory cannot be determined
		return filepath.Join(".", "nplay.log")
	}

	switch runtime.GOOS {
	case "windows":
		// Windows:  %LOCALAPPDATA%\nplay\logs
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			basePath = filepath.Join(appData, "nplay", "logs")
		} else {
			basePath = filepath.Join(homedir, "AppData", "local", "nplay", "logs")
		}
	case "darwin":
		// macOS:  ~/Library/Logs/nplay
		basePath = filepath.Join(homedir, "Library", "Logs", "nplay")
	default:
		// Linux/BSD:  XDG_STATE_HOME
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			basePath = filepath.Join(xdgState, "nplay", "logs")
		} else {
			basePath = filepath.Join(homedir, ".local", "state", "nplay", "logs")
		}
	}

	err = os.MkdirAll(basePath, 0700)
	if err != nil {
		// If we failed to create the directory, fallback to logging in the current directory
		return filepath.Join(".", "nplay.log")
	}
	return filepath.Join(basePath, "nplay.log")
}
