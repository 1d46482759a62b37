package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"tvnav/internal/domain"
)

// FileScope is a page on disk; every Scan re-reads the file so a rescan
// picks up edits made since the view was initialized
type FileScope struct {
	path              string
	containerSelector string
}

// NewFileScope creates a scope for an HTML file
func NewFileScope(path, containerSelector string) (*FileScope, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page path: %w", err)
	}
	return &FileScope{path: abs, containerSelector: containerSelector}, nil
}

// ID is the absolute page path
func (f *FileScope) ID() string {
	return f.path
}

// Path returns the absolute page path
func (f *FileScope) Path() string {
	return f.path
}

// Load parses the current contents of the file
func (f *FileScope) Load() (*Document, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer file.Close()
	return Parse(f.path, file, f.containerSelector)
}

// Scan implements the navigation scope
func (f *FileScope) Scan(selector string) (domain.Layout, error) {
	doc, err := f.Load()
	if err != nil {
		return domain.Layout{}, err
	}
	return doc.Scan(selector)
}
