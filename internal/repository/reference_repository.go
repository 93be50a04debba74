package repository

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docqa-relay/internal/domain"
)

// FileReferenceRepository stores uploaded file names in a flat text file,
// one name per line.
type FileReferenceRepository struct {
	path   string
	logger domain.Logger
}

// NewFileReferenceRepository creates a repository backed by path
func NewFileReferenceRepository(path string, logger domain.Logger) *FileReferenceRepository {
	return &FileReferenceRepository{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file path
func (r *FileReferenceRepository) Path() string {
	return r.path
}

// Load reads the stored names. A missing file is not an error.
func (r *FileReferenceRepository) Load() ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("File names ledger not found", "path", r.path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open file names ledger: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file names ledger: %w", err)
	}

	r.logger.Debug("Loaded file names", "path", r.path, "count", len(names))
	return names, nil
}

// Save replaces the ledger contents with names.
func (r *FileReferenceRepository) Save(names []string) error {
	var sb strings.Builder
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sb.WriteString(name)
		sb.WriteString("\n")
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".file-names-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ledger: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger: %w", err)
	}

	r.logger.Info("Saved file names", "path", r.path, "count", len(names))
	return nil
}
