package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "nplay-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Fatalf("Failed to remove temp directory: %v", err)
		}
	})

	tmpConfigPath := filepath.Join(tmpDir, "config.yaml")
	setEnv(t, "NPLAY_CONFIG_PATH", tmpConfigPath)

	t.Cleanup(func() {
		cleanupEnvVars(t)
	})

	return tmpConfigPath
}

// TestConfigIntegration tests the config package with actual file operations
// This test uses a temporary directory to avoid interfering with real user configs
func TestConfigIntegration(t *testing.T) {
	// Test loading when no config exists (should create default)
	t.Run("LoadDefaultConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		config := loadConfig(t)

		// Verify default values
		assert.Equal(t, 20, config.Player.ConnectAttempts)
		assert.Equal(t, 500*time.Millisecond, config.Player.ConnectRetryDelay())
		assert.Empty(t, config.Player.EnginePath)
		assert.Equal(t, 5.0, config.UI.SeekStep)
		assert.Equal(t, 2*time.Second, config.UI.SeekWindow())
		assert.False(t, config.UI.ReturnPassthrough)
		assert.False(t, config.UI.HideSubtitleMenu)
		assert.Equal(t, 1280, config.UI.WindowWidth)
		assert.Equal(t, 1080, config.UI.ScreenHeight)
		assert.Empty(t, config.Catalog.Path)
		assert.Equal(t, "info", config.Logging.Level)
		assert.Equal(t, "info", config.Logging.NativeLevel)
		assert.NotEmpty(t, config.Logging.FilePath)

		// Verify file was created
		if _, err := os.Stat(tmpConfigPath); os.IsNotExist(err) {
			t.Errorf("Config file was not created at %s", tmpConfigPath)
		}

		// Load the file from disk to assert that the 'dynamic' configurations were not saved when the default config was written
		savedConfig, _ := loadFromDisk(tmpConfigPath)
		assert.Empty(t, savedConfig.Logging.FilePath)

		path, err := Path()
		assert.NoError(t, err)
		assert.Equal(t, tmpConfigPath, path)
	})

	// Test saving and loading custom values
	t.Run("SaveAndLoadConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Create a config with custom values
		customConfig := &Config{
			Player: PlayerConfig{
				SocketPath:      "/run/engine.sock",
				EnginePath:      "/usr/bin/nplay-engine",
				EngineArgs:      "--verbose",
				ConnectAttempts: 3,
			},
			UI: UIConfig{
				SeekStep:          10,
				SeekWindowMs:      500,
				ReturnPassthrough: true,
				HideSubtitleMenu:  true,
			},
			Catalog: CatalogConfig{
				Path: "/etc/nplay/clips.yaml",
			},
			Logging: LoggingConfig{
				Level:       "error",
				FilePath:    "/var/log/nplay.log",
				NativeLevel: "debug",
			},
		}

		saveConfig(t, customConfig, tmpConfigPath)
		loadedConfig := loadConfig(t)

		// Verify loaded values match what we saved
		assert.Equal(t, "/run/engine.sock", loadedConfig.Player.SocketPath)
		assert.Equal(t, "/usr/bin/nplay-engine", loadedConfig.Player.EnginePath)
		assert.Equal(t, "--verbose", loadedConfig.Player.EngineArgs)
		assert.Equal(t, 3, loadedConfig.Player.ConnectAttempts)
		// Not in the file, so the default survives the merge
		assert.Equal(t, 500, loadedConfig.Player.ConnectRetryMs)
		assert.Equal(t, 10.0, loadedConfig.UI.SeekStep)
		assert.Equal(t, 500*time.Millisecond, loadedConfig.UI.SeekWindow())
		assert.True(t, loadedConfig.UI.ReturnPassthrough)
		assert.True(t, loadedConfig.UI.HideSubtitleMenu)
		assert.Equal(t, 1920, loadedConfig.UI.ScreenWidth)
		assert.Equal(t, "/etc/nplay/clips.yaml", loadedConfig.Catalog.Path)
		assert.Equal(t, "error", loadedConfig.Logging.Level)
		assert.Equal(t, "/var/log/nplay.log", loadedConfig.Logging.FilePath)
		assert.Equal(t, "debug", loadedConfig.Logging.NativeLevel)
	})

	// Test invalid YAML handling
	t.Run("InvalidConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Write invalid YAML to the config file
		if err := os.WriteFile(tmpConfigPath, []byte("invalid: yaml: ["), 0600); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		// Attempt to load the invalid config
		_, err := Load()
		if err == nil {
			t.Error("Expected error when loading invalid YAML, got nil")
		}
	})

	t.Run("EnvironmentVariableOverrides", func(t *testing.T) {
		setupTestConfig(t)

		setEnv(t, "NPLAY_CONFIG_PLAYER_SOCKET_PATH", "/tmp/e.sock")
		setEnv(t, "NPLAY_CONFIG_PLAYER_ENGINE_PATH", "/engine")
		setEnv(t, "NPLAY_CONFIG_PLAYER_ENGINE_ARGS", "--fullscreen")
		setEnv(t, "NPLAY_CONFIG_PLAYER_CONNECT_ATTEMPTS", "7")
		setEnv(t, "NPLAY_CONFIG_PLAYER_CONNECT_RETRY_MS", "not-a-number")
		setEnv(t, "NPLAY_CONFIG_UI_SEEK_STEP", "2.5")
		setEnv(t, "NPLAY_CONFIG_UI_SEEK_WINDOW_MS", "1000")
		setEnv(t, "NPLAY_CONFIG_UI_RETURN_PASSTHROUGH", "true")
		setEnv(t, "NPLAY_CONFIG_UI_HIDE_SUBTITLE_MENU", "1")
		setEnv(t, "NPLAY_CONFIG_CATALOG_PATH", "/clips.yaml")
		setEnv(t, "NPLAY_CONFIG_LOGGING_LEVEL", "warn")
		setEnv(t, "NPLAY_CONFIG_LOGGING_FILE_PATH", "/nplay.log")
		setEnv(t, "NPLAY_CONFIG_LOGGING_NATIVE_LEVEL", "none")

		config := loadConfig(t)

		assert.Equal(t, "/tmp/e.sock", config.Player.SocketPath)
		assert.Equal(t, "/engine", config.Player.EnginePath)
		assert.Equal(t, "--fullscreen", config.Player.EngineArgs)
		assert.Equal(t, 7, config.Player.ConnectAttempts)
		assert.Equal(t, 500, config.Player.ConnectRetryMs)
		assert.Equal(t, 2.5, config.UI.SeekStep)
		assert.Equal(t, 1000, config.UI.SeekWindowMs)
		assert.True(t, config.UI.ReturnPassthrough)
		assert.True(t, config.UI.HideSubtitleMenu)
		assert.Equal(t, "/clips.yaml", config.Catalog.Path)
		assert.Equal(t, "warn", config.Logging.Level)
		assert.Equal(t, "/nplay.log", config.Logging.FilePath)
		assert.Equal(t, "none", config.Logging.NativeLevel)

		// Remove the NPLAY_CONFIG_LOGGING_LEVEL env var, then reload the config.
		// This ensures that the env var overrides were not persisted to disk.
		unsetEnv(t, "NPLAY_CONFIG_LOGGING_LEVEL")

		config = loadConfig(t)

		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("ModifyConfig", func(t *testing.T) {
		setupTestConfig(t)
		config := loadConfig(t)

		assert.Empty(t, config.Catalog.Path)

		err := UpdateConfig(func(config *Config) {
			config.Catalog.Path = "/srv/clips.yaml"
		})
		if err != nil {
			t.Fatalf("Failed to update config: %v", err)
		}

		// Reload the config and ensure it has the new value
		config = loadConfig(t)
		assert.Equal(t, "/srv/clips.yaml", config.Catalog.Path)
	})

	t.Run("EnvVarHelp", func(t *testing.T) {
		help := EnvVarHelp()
		assert.Len(t, help, len(supportedEnvVars))
		for _, line := range help {
			assert.True(t, strings.HasPrefix(line, "NPLAY_CONFIG_"), line)
		}
	})
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	err := os.Setenv(key, value)
	if err != nil {
		t.Fatalf("Failed to set environment variable: %v", err)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	err := os.Unsetenv(key)
	if err != nil {
		t.Fatalf("Failed to unset environment variable: %v", err)
	}
}

func saveConfig(t *testing.T, config *Config, configPath string) {
	t.Helper()
	if err := save(config, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
}

func loadConfig(t *testing.T) *Config {
	t.Helper()
	config, err := Load()
	if err != nil {
		t.Fatalf("Loading of config failed: %v", err)
	}
	return config
}

// Removes any env vars with the NPLAY_CONFIG prefix to ensure test isolation
func cleanupEnvVars(t *testing.T) {
	t.Helper()

	for _, envVar := range os.Environ() {
		if key := strings.Split(envVar, "=")[0]; strings.HasPrefix(key, "NPLAY_CONFIG") {
			unsetEnv(t, key)
		}
	}
}
