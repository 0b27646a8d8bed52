package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseFile is the name of Kolibri's main database inside KOLIBRI_HOME.
const DatabaseFile = "db.sqlite3"

// ErrDatabaseNotFound is returned when no content database could be located.
var ErrDatabaseNotFound = errors.New("no Kolibri database found")

// DiscoverDB finds the database path using priority: flag > $KOLIBRI_HOME > ~/.kolibri
func DiscoverDB(flagPath string) (string, error) {
	// 1. Explicit path
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err != nil {
			return "", fmt.Errorf("%w at --db path: %s", ErrDatabaseNotFound, flagPath)
		}
		return flagPath, nil
	}

	var searched []string

	// 2. KOLIBRI_HOME
	if home := os.Getenv("KOLIBRI_HOME"); home != "" {
		candidate := filepath.Join(home, DatabaseFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		searched = append(searched, candidate)
	}

	// 3. Kolibri's default home
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".kolibri", DatabaseFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		searched = append(searched, candidate)
	}

	return "", fmt.Errorf("%w (searched %s; set KOLIBRI_HOME or use --db)", ErrDatabaseNotFound, strings.Join(searched, ", "))
}
