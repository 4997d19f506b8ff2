package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when no value has been stored yet.
var ErrNotFound = errors.New("storage: not found")

// JSONFile persists a single value of type T as a JSON document on disk.
// It is the durable-storage boundary for session snapshots and token pairs:
// all reads happen on load, all writes go through Save, so the side effect
// stays auditable in one place.
type JSONFile[T any] struct {
	path string
}

func NewJSONFile[T any](path string) *JSONFile[T] {
	return &JSONFile[T]{path: path}
}

func (f *JSONFile[T]) Load() (*T, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[JSONFile.Load] os.ReadFile")
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "[JSONFile.Load] json.Unmarshal")
	}
	return &v, nil
}

// Save writes atomically: marshal to a temp file in the same directory, then
// rename over the target so a crash never leaves a half-written document.
func (f *JSONFile[T]) Save(v *T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[JSONFile.Save] json.MarshalIndent")
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[JSONFile.Save] os.MkdirAll")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "[JSONFile.Save] os.CreateTemp")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[JSONFile.Save] tmp.Write")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[JSONFile.Save] tmp.Close")
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[JSONFile.Save] os.Chmod")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[JSONFile.Save] os.Rename")
	}
	return nil
}

func (f *JSONFile[T]) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[JSONFile.Clear] os.Remove")
	}
	return nil
}
