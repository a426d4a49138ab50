package utils

import (
	"os"
	"os/user"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// DefaultKeyComment builds the username@hostname comment placed on
// generated SSH public key lines. Unavailable parts are left out rather
// than failing key generation.
func DefaultKeyComment() string {
	username, err := GetUsername()
	if err != nil {
		username = ""
	}
	hostname, err := GetHostname()
	if err != nil {
		hostname = ""
	}

	switch {
	case username != "" && hostname != "":
		return username + "@" + hostname
	case username != "":
		return username
	case hostname != "":
		return hostname
	default:
		return ""
	}
}
