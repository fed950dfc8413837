// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// FileMode is the permissions for the files created by SaveFile.
var FileMode = os.FileMode(0644)

// SaveFile writes value to the file at path, creating or truncating it. The
// file is opened before the value is encoded, so a value that cannot be
// encoded leaves an empty file behind. Parent directories are not created.
func SaveFile(path string, value any) error {
	return saveFile(path, func() ([]byte, error) {
		return encodeValue(value)
	})
}

// LoadFile reads a value saved by SaveFile.
func LoadFile(path string) (any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decodeValue(data)
}

// SaveFileAs is like SaveFile, but the value is saved with its static type.
// Files saved with SaveFileAs can only be loaded with LoadFileAs for the
// same (or a gob-compatible) type.
func SaveFileAs[T any](path string, value *T) error {
	return saveFile(path, func() ([]byte, error) {
		return encodeAs(value)
	})
}

// LoadFileAs reads a value saved by SaveFileAs.
func LoadFileAs[T any](path string) (*T, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decodeAs[T](data)
}

func saveFile(path string, encodef func() ([]byte, error)) (status error) {
	fp, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FileMode)
	if err != nil {
		return fmt.Errorf("could not open file %q: %w", path, err)
	}
	defer func() {
		if err := fp.Close(); err != nil && status == nil {
			status = fmt.Errorf("could not close file %q: %w", path, err)
		}
	}()

	data, err := encodef()
	if err != nil {
		return err
	}
	if _, err := fp.Write(data); err != nil {
		return fmt.Errorf("could not write to file %q: %w", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %q: %w", path, err)
	}
	defer fp.Close()

	data, err := io.ReadAll(fp)
	if err != nil {
		return nil, fmt.Errorf("could not read file %q: %w", path, err)
	}
	return data, nil
}

// Save is like SaveFile, but failures are logged and suppressed. A status
// line is logged on success as well.
func Save(value any, path string) {
	if err := SaveFile(path, value); err != nil {
		log.Printf("could not save value to %s: %v", path, err)
		return
	}
	log.Printf("saved value to %s", path)
}

// Load is like LoadFile, but failures are logged and suppressed. Returns nil
// when the file doesn't exist or cannot be decoded, so callers cannot tell a
// failure apart from a saved nil value.
func Load(path string) any {
	value, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("file %s not found", path)
			return nil
		}
		log.Printf("could not load value from %s: %v", path, err)
		return nil
	}
	log.Printf("loaded value from %s", path)
	return value
}
