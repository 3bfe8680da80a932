package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileNames are the file names FindConfig looks for, in order of preference.
var ConfigFileNames = []string{".tvault.yaml", "tvault.yaml"}

// FindConfig recursively looks upwards from startDir for a config file.
// If found, returns its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigFileNames {
			if path := filepath.Join(dir, name); hasFile(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config not found")
}

func hasFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
