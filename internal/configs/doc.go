// Package configs manages user configuration and settings for joesrsa.
//
// Configuration is stored in TOML format at the platform config directory
// (os.UserConfigDir()/joesrsa/config.toml). Key files default to the XDG
// data directory (XDG_DATA_HOME/joesrsa/keys), alongside the operation
// journal.
//
// # User Configuration
//
// The user config stores:
//   - An install UUID, auto-generated on first use, which tags journal
//     entries from this machine
//   - Key generation defaults: modulus bit size, public exponent,
//     Miller-Rabin rounds, and an optional SSH key comment
//
// A missing config file is not an error; built-in defaults apply (2048
// bits, exponent 65537, 64 rounds). Unset fields in a hand-edited file
// fall back the same way.
//
// # Settings
//
// Global settings are initialized at startup:
//   - UserJoesRSASettings: paths to the user config, key directory, and
//     journal file, plus the current username
//
// These are package variables so tests can point them at temp directories.
package configs
