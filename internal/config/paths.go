package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandLogDir resolves $VAR references and a leading ~ in the log directory.
// The path is returned unexpanded when the home directory is unknown.
func expandLogDir(dir string) string {
	dir = os.ExpandEnv(strings.TrimSpace(dir))
	if dir != "~" && !strings.HasPrefix(dir, "~"+string(filepath.Separator)) && !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return dir
	}
	return filepath.Join(home, dir[1:])
}
