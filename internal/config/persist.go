package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDirName  = "hydroboard"
	configFileName = "config.json"
)

func DefaultConfig() Config {
	return Config{
		APIBaseURL:         "http://localhost:5002",
		TimeoutSecs:        60,
		SuccessDisplaySecs: 10,
		Theme:              "dark",
		DemoDir:            ".",
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, err
	}
	return mergeConfig(config, stored), nil
}

func SaveConfig(config Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// PersistedConfig returns the configuration written back on exit. Demo mode
// is a per-invocation flag rather than a setting, so the stored value comes
// from the loaded config instead of the command line.
func PersistedConfig(effective, loaded Config) Config {
	effective.Demo = loaded.Demo
	return effective
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.APIBaseURL != nil {
		merged.APIBaseURL = *stored.APIBaseURL
	}
	if stored.TimeoutSecs != nil && *stored.TimeoutSecs > 0 {
		merged.TimeoutSecs = *stored.TimeoutSecs
	}
	if stored.SuccessDisplaySecs != nil && *stored.SuccessDisplaySecs > 0 {
		merged.SuccessDisplaySecs = *stored.SuccessDisplaySecs
	}
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.Demo != nil {
		merged.Demo = *stored.Demo
	}
	if stored.DemoDir != nil {
		merged.DemoDir = *stored.DemoDir
	}
	return merged
}
