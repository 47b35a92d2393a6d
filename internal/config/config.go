package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/encorekit/encore-init/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyPackageManager = "package_manager"
	KeyVerbose        = "verbose"
	KeyColor          = "color"
)

// allowed lists the accepted values for enumerated keys. Keys that are not
// listed accept any value.
var allowed = map[string][]string{
	KeyPackageManager: {"npm", "yarn"},
	KeyVerbose:        {"true", "false"},
	KeyColor:          {"auto", "always", "never"},
}

// Dir returns the path to the config directory (~/.encore-init/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.encore-init/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyPackageManager, "npm")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyColor, "auto")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// PackageManager returns the package manager named in the install plan.
func PackageManager() string {
	return viper.GetString(KeyPackageManager)
}

// Verbose reports whether debug logging is enabled by default.
func Verbose() bool {
	return viper.GetBool(KeyVerbose)
}

// ColorMode returns one of "auto", "always" or "never".
func ColorMode() string {
	return viper.GetString(KeyColor)
}

// Validate checks value against the accepted values for key.
func Validate(key, value string) error {
	values, ok := allowed[key]
	if !ok {
		return nil
	}
	for _, v := range values {
		if v == value {
			return nil
		}
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return fmt.Errorf("invalid value %q for %s: expected one of %s", value, key, strings.Join(sorted, ", "))
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
