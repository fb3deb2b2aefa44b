package level

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader scans a directory tree for level files.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every supported level file under the root,
// sorted by level ID for deterministic ordering. Files that fail to parse
// are skipped.
func (l *Loader) LoadAll() ([]*Level, error) {
	var levels []*Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		lvl, loadErr := LoadFile(path)
		if loadErr != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

func isSupportedExtension(ext string) bool {
	switch ext {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
