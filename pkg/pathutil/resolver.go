// Package pathutil provides centralized path management for CLI state files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const configDirName = "fa"

// PathResolver manages paths for the env file and the history database.
type PathResolver struct {
	envFile   string
	historyDB string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// EnvFile is the path to the .env file holding credentials and tokens.
	EnvFile string
	// HistoryDB is the path to the SQLite call-history database.
	HistoryDB string
}

// New creates a new PathResolver with the given configuration.
// If HistoryDB is empty, it defaults to {user config dir}/fa/history.db.
func New(config Config) *PathResolver {
	historyDB := config.HistoryDB
	if historyDB == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			historyDB = filepath.Join(dir, configDirName, "history.db")
		} else {
			historyDB = filepath.Join("."+configDirName, "history.db")
		}
	}

	return &PathResolver{
		envFile:   config.EnvFile,
		historyDB: historyDB,
	}
}

// GetEnvFile returns the env file path.
func (p *PathResolver) GetEnvFile() string {
	return p.envFile
}

// GetHistoryDBPath returns the history database file path.
func (p *PathResolver) GetHistoryDBPath() string {
	return p.historyDB
}

// EnsureParentDir ensures the parent directory of a file exists.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
