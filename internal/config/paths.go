package config

import (
	"os"
	"path/filepath"
)

// appDirName is the directory under the user config root holding the
// config file and its companion .env secrets file.
const appDirName = "read-no-evil"

// DefaultPath resolves the default configuration path:
// $XDG_CONFIG_HOME/read-no-evil/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset. This is the only place the
// package touches the environment, and it is called once at the CLI
// boundary; everything else receives the resolved path explicitly.
func DefaultPath() string {
	root := os.Getenv("XDG_CONFIG_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, appDirName, "config.yaml")
}
