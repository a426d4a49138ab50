package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/joesrsa/internal/configs"
)

// Entry represents a single journal entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	InstallID string `json:"uuid"` // Install UUID of the machine that ran the operation.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Bits        int    `json:"bits,omitempty"`        // For keygen.
	Exponent    string `json:"exponent,omitempty"`    // For keygen, 0x-prefixed hex.
	Rounds      int    `json:"rounds,omitempty"`      // For keygen.
	Seeded      bool   `json:"seeded,omitempty"`      // For keygen with a fixed seed.
	Fingerprint string `json:"fingerprint,omitempty"` // SHA256 fingerprint of the public key.
	KeyPath     string `json:"key_path,omitempty"`    // For encrypt/decrypt.
	InputPath   string `json:"input_path,omitempty"`  // For encrypt/decrypt; "-" means stdin.
	OutputPath  string `json:"output_path,omitempty"` // For keygen/encrypt/decrypt; "-" means stdout.
	Mode        string `json:"mode,omitempty"`        // For encrypt (armored/binary), decrypt (crt/direct).
	Bytes       int    `json:"bytes,omitempty"`       // Plaintext size for encrypt/decrypt.
}

// Log appends an entry to the journal.
// If logging fails, the operation continues; commands should not fail
// just because journaling failed.
func Log(entry Entry) {
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := Path()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// Open file for appending (create if it doesn't exist).
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// LogWithInstall is a convenience function that populates the install UUID
// from the user config.
func LogWithInstall(op string) Entry {
	entry := Entry{Operation: op}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return entry
	}

	entry.InstallID = userConfig.User.UUID

	return entry
}

// Path returns the path to the journal file.
func Path() string {
	if configs.UserJoesRSASettings == nil {
		return ""
	}
	return configs.UserJoesRSASettings.UserJournalPath
}

// ReadEntries reads all entries from the journal.
// Returns an empty slice if the journal doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := Path()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into journal entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
