package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	pkgLogger "github.com/fpt/go-weis-cli/pkg/logger"
)

// Output formats for rendered answers
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// DefaultSelectSize is the number of choices shown at once by the interactive selector
const DefaultSelectSize = 8

// Settings represents the main application settings
type Settings struct {
	Output   OutputSettings `json:"output"`
	Prompt   PromptSettings `json:"prompt"`
	LogLevel string         `json:"log_level"`
}

// OutputSettings controls how answers are written
type OutputSettings struct {
	Format string `json:"format"`         // "yaml" or "json"
	Path   string `json:"path,omitempty"` // empty = stdout
}

// PromptSettings controls the interactive terminal prompter
type PromptSettings struct {
	HistoryFile    string `json:"history_file,omitempty"` // readline history for free-text answers
	SelectSize     int    `json:"select_size"`            // visible rows of a choice list
	ConfirmDefault bool   `json:"confirm_default"`        // answer used when a confirmation is left empty
}

// LoadSettings loads application settings from a JSON file.
// An empty path searches the default locations; when nothing is found the
// defaults are returned.
func LoadSettings(configPath string) (*Settings, error) {
	if configPath == "" {
		configPath = findSettingsFile()
		if configPath == "" {
			return GetDefaultSettings(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	applyDefaults(&settings)

	return &settings, nil
}

// SaveSettings saves application settings to a JSON file
func SaveSettings(configPath string, settings *Settings) error {
	if configPath == "" {
		configPath = findSettingsFile()
		if configPath == "" {
			configPath = filepath.Join(".weis", "settings.json")
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	pkgLogger.NewComponentLogger("settings").InfoWithIcon("📝", "Wrote settings file", "path", configPath)
	return nil
}

// GetDefaultSettings returns default application settings
func GetDefaultSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			Format: FormatYAML,
		},
		Prompt: PromptSettings{
			SelectSize: DefaultSelectSize,
		},
		LogLevel: string(pkgLogger.LogLevelInfo),
	}
}

// applyDefaults fills in missing fields with default values
func applyDefaults(settings *Settings) {
	defaults := GetDefaultSettings()

	if settings.Output.Format == "" {
		settings.Output.Format = defaults.Output.Format
	}
	if settings.Prompt.SelectSize == 0 {
		settings.Prompt.SelectSize = defaults.Prompt.SelectSize
	}
	if settings.LogLevel == "" {
		settings.LogLevel = defaults.LogLevel
	}
}

// ValidateSettings validates the settings configuration
func ValidateSettings(settings *Settings) error {
	if settings.Output.Format != FormatYAML && settings.Output.Format != FormatJSON {
		return fmt.Errorf("unsupported output format: %s (must be 'yaml' or 'json')", settings.Output.Format)
	}

	if settings.Prompt.SelectSize < 1 {
		return fmt.Errorf("select_size must be positive")
	}

	if !pkgLogger.LogLevel(settings.LogLevel).Valid() {
		return fmt.Errorf("unsupported log level: %s (must be 'debug', 'info', 'warn' or 'error')", settings.LogLevel)
	}

	return nil
}

// DefaultSettingsPath is where -init-settings writes when no path is given.
func DefaultSettingsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".weis", "settings.json")
	}
	return filepath.Join(homeDir, ".weis", "settings.json")
}

// findSettingsFile searches for settings.json in order of preference:
// 1. .weis/settings.json in current directory
// 2. $HOME/.weis/settings.json
// Returns empty string if none found
func findSettingsFile() string {
	currentDirPath := filepath.Join(".weis", "settings.json")
	if _, err := os.Stat(currentDirPath); err == nil {
		return currentDirPath
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		homeDirPath := filepath.Join(homeDir, ".weis", "settings.json")
		if _, err := os.Stat(homeDirPath); err == nil {
			return homeDirPath
		}
	}

	return ""
}
