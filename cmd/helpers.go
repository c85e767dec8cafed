package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/craft-stats/internal/model"
	"github.com/spf13/cobra"
)

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// loadConfig reads the file named by --config.
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	configFlag, _ := cmd.Flags().GetString("config")

	path, err := expandPath(configFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --config: %w", err)
	}

	return model.LoadConfig(path)
}

// dataDir returns the absolute directory named by --data-dir.
func dataDir(cmd *cobra.Command) (string, error) {
	dirFlag, _ := cmd.Flags().GetString("data-dir")

	dir, err := expandPath(dirFlag)
	if err != nil {
		return "", fmt.Errorf("invalid --data-dir: %w", err)
	}

	return dir, nil
}
