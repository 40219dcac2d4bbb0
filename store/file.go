package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dkovalenko-dev/gridcalc"
)

// FileStore saves and loads single-table snapshot files. The format is
// chosen by extension: ".yaml"/".yml" for YAML, anything else for JSON.
type FileStore struct {
	logger *slog.Logger
}

// NewFileStore creates a file-backed store. A nil logger discards all
// output.
func NewFileStore(logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileStore{logger: logger}
}

func isYAMLPath(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes the snapshot to path, creating parent directories as
// needed. An existing file is overwritten.
func (fs *FileStore) Save(path string, snap gridcalc.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if isYAMLPath(path) {
		err = snap.WriteYAML(f)
	} else {
		err = snap.WriteJSON(f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fs.logger.Info("snapshot saved", "path", path, "cells", len(snap.Cells))
	return nil
}

// Load reads and validates a snapshot from path.
func (fs *FileStore) Load(path string) (gridcalc.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var snap gridcalc.Snapshot
	if isYAMLPath(path) {
		snap, err = gridcalc.ReadSnapshotYAML(f)
	} else {
		snap, err = gridcalc.ReadSnapshotJSON(f)
	}
	if err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}

	fs.logger.Info("snapshot loaded", "path", path, "cells", len(snap.Cells))
	return snap, nil
}
