package planfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading plan files from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new plan loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all plan files.
// Returns files sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]File, error) {
	var files []File

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		f, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		files = append(files, f)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(files, func(i, j int) bool {
		return files[i].ID < files[j].ID
	})

	return files, nil
}

// LoadFile loads a single plan file. A file without an id takes its file
// name, minus the extension.
func (l *Loader) LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	f.Path = path
	return f, nil
}

// LoadByID loads a specific plan by ID.
func (l *Loader) LoadByID(id string) (File, error) {
	files, err := l.LoadAll()
	if err != nil {
		return File{}, err
	}

	for _, f := range files {
		if f.ID == id {
			return f, nil
		}
	}

	return File{}, fmt.Errorf("plan not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
