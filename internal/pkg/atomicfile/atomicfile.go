// Package atomicfile writes files through a temp file and a rename so a
// crash never leaves a half-written document behind.
//
// Rename is atomic for a single writer only. Two processes writing the same
// path still race; callers serialize access themselves.
package atomicfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

const filePerm = 0o644

// Write replaces path with data, creating parent directories as needed
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to set permissions on %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace %s", path)
	}

	return nil
}

// WriteJSON encodes v as indented JSON and writes it atomically
func WriteJSON(path string, v any) error {
	data, err := MarshalIndent(v)
	if err != nil {
		return err
	}
	return Write(path, data)
}

// MarshalIndent encodes v with two-space indentation and without HTML escaping
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to encode JSON")
	}
	return buf.Bytes(), nil
}
