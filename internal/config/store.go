// Package config manages the rnoe configuration document: a markup value
// tree with a `protection` mapping and an ordered `accounts` sequence,
// persisted at a caller-chosen path with crash-safe atomic saves.
//
// The package never reads environment state itself; the configuration
// path is resolved once at the CLI boundary (DefaultPath plus flag/env
// precedence) and passed in explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/markup"
)

// Store loads and saves the configuration document at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store for the given resolved path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the configuration document. A missing file, an
// unreadable file, and a malformed document are distinct error kinds.
func (s *Store) Load() (markup.Value, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return markup.Value{}, errors.NewNotFoundError(
				errors.ErrCodeConfigNotFound,
				"config file not found: "+s.path,
			)
		}
		return markup.Value{}, errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot read config file "+s.path,
			err,
		)
	}

	doc, err := markup.Load(string(data))
	if err != nil {
		return markup.Value{}, err
	}
	if doc.Kind() != markup.KindMapping {
		return markup.Value{}, errors.NewMalformedError(
			errors.ErrCodeMalformedDocument,
			fmt.Sprintf("config root must be a mapping, got %s", doc.Kind()),
		)
	}
	return doc, nil
}

// Save serializes the document and replaces the target atomically: the
// text is written to a fresh temporary file in the target directory and
// renamed over the path, so a concurrent reader never observes a
// half-written file and a failed save leaves the previous file untouched.
func (s *Store) Save(doc markup.Value) error {
	if doc.Kind() != markup.KindMapping {
		return errors.NewInternalError(
			errors.ErrCodeInternalError,
			fmt.Sprintf("config document must be a mapping, got %s", doc.Kind()),
			nil,
		)
	}

	text := markup.Dump(doc.Mapping())

	parent := filepath.Dir(s.path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot create config directory "+parent,
			err,
		)
	}

	// The temp file must live in the target directory: rename is only
	// atomic within one filesystem.
	tmp, err := os.CreateTemp(parent, ".config-*.yaml.tmp")
	if err != nil {
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot create temporary file in "+parent,
			err,
		)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, text); err != nil {
		os.Remove(tmpPath)
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot write temporary config file",
			err,
		)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.NewIOError(
			errors.ErrCodeIOFailure,
			"cannot replace config file "+s.path,
			err,
		)
	}
	return nil
}

func writeAndClose(f *os.File, text string) error {
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
