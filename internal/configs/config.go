package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Built-in generation defaults, used when the config file is absent or a
// field is unset.
const (
	DefaultBits     = 2048
	DefaultExponent = "65537"
	DefaultRounds   = 64
)

type UserConfig struct {
	User     User     `toml:"user"`
	Defaults Defaults `toml:"defaults"`
}

type User struct {
	UUID string `toml:"install_uuid"`
}

// Defaults holds key generation defaults. Exponent is kept as a string so
// values larger than an int64 survive the TOML round trip; it accepts
// decimal or 0x-prefixed hex.
type Defaults struct {
	Bits     int    `toml:"bits"`
	Exponent string `toml:"exponent"`
	Rounds   int    `toml:"rounds"`
	Comment  string `toml:"comment"`
}

// DefaultUserConfig returns a config populated with the built-in defaults
// and no install UUID.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Defaults: Defaults{
			Bits:     DefaultBits,
			Exponent: DefaultExponent,
			Rounds:   DefaultRounds,
		},
	}
}

// LoadUserConfig loads the user configuration from the config file.
// A missing file is not an error; built-in defaults are returned.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserJoesRSASettings.UserConfigsPath, "config.toml")

	config := DefaultUserConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	config.fillDefaults()
	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserJoesRSASettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateInstallUUID generates a new UUID identifying this install.
func GenerateInstallUUID() string {
	return uuid.New().String()
}

// EnsureUserConfig ensures the user configuration exists and has an
// install UUID, minting and persisting one on first use.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.User.UUID == "" {
		config.User.UUID = GenerateInstallUUID()
		if err := SaveUserConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}

// fillDefaults replaces unset fields with the built-in defaults, so a
// hand-edited config file with missing keys still behaves.
func (c *UserConfig) fillDefaults() {
	if c.Defaults.Bits == 0 {
		c.Defaults.Bits = DefaultBits
	}
	if c.Defaults.Exponent == "" {
		c.Defaults.Exponent = DefaultExponent
	}
	if c.Defaults.Rounds == 0 {
		c.Defaults.Rounds = DefaultRounds
	}
}
