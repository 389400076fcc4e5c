// Package config loads the application settings. The engine treats the
// result as an immutable configuration object; nothing here is re-read
// after startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"imgsieve/internal/model"
)

// Settings is the read-only configuration consumed by the engine and the
// presentation layer.
type Settings struct {
	// BaseDir is the directory of unsorted images.
	BaseDir string
	// LabelFolders maps each label to its folder name under BaseDir,
	// indexed by model.Label.
	LabelFolders [3]string
	// Keys maps key names to intent names (a, unknown, b, undo).
	Keys map[string]string
	// HistoryDB is the path of the classification history database.
	// Empty disables the history log.
	HistoryDB string
	// RenameOnConflict resolves destination collisions with a numeric
	// suffix instead of surfacing an error.
	RenameOnConflict bool
}

// Load reads settings from the already-initialized viper instance and
// validates them. baseDirArg, when non-empty, overrides sort.base_dir.
func Load(baseDirArg string) (*Settings, error) {
	baseDir := baseDirArg
	if baseDir == "" {
		baseDir = viper.GetString("sort.base_dir")
	}
	if baseDir == "" {
		return nil, fmt.Errorf("no base directory: pass one as an argument or set sort.base_dir")
	}
	baseDir = ExpandPath(baseDir)

	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("base directory %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base directory %s is not a directory", baseDir)
	}

	s := &Settings{
		BaseDir:          baseDir,
		LabelFolders:     [3]string{"A", "skip", "B"},
		RenameOnConflict: viper.GetBool("sort.rename_on_conflict"),
		HistoryDB:        ExpandPath(viper.GetString("history.db_path")),
		Keys:             viper.GetStringMapString("input.keys"),
	}

	for _, label := range []model.Label{model.LabelA, model.LabelUnknown, model.LabelB} {
		if folder := viper.GetString("labels." + label.String()); folder != "" {
			if strings.ContainsRune(folder, os.PathSeparator) {
				return nil, fmt.Errorf("label folder %q must be a plain name, not a path", folder)
			}
			s.LabelFolders[label] = folder
		}
	}

	return s, nil
}

// DefaultHistoryPath returns the default location of the history database,
// under the user config directory.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "imgsieve", "history.db")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
