package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/joesrsa/internal/utils"
)

type UserSettings struct {
	UserKeysPath    string
	UserConfigsPath string
	UserJournalPath string
	Username        string
}

var UserJoesRSASettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	// These paths are independent of the working directory, so it is ok to init here
	UserJoesRSASettings = &UserSettings{
		UserKeysPath:    filepath.Join(dataDir, "joesrsa", "keys"),
		UserConfigsPath: filepath.Join(configDir, "joesrsa"),
		UserJournalPath: filepath.Join(dataDir, "joesrsa", "journal.jsonl"),
		Username:        username,
	}
}
