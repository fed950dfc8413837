// Copyright (c) 2025 BVK Chaitanya

// Package valuestore saves arbitrary in-memory values and restores them
// later, either to a file per value or to a named slot in a key-value
// database.
//
// Values are gob-encoded inside a gobs.StoredValue envelope so that the
// dynamic type of the value travels with the data. The envelope is preceded
// by a gobs.StoredTypes record describing the unnamed slice, array, map and
// pointer types found in the value (for example [][]int, []map[string]any or
// [3]float64), which are registered with gob on both save and load. Such
// types can be nested to any depth as long as they are built from basic
// types, interfaces and named types known to this package: time.Time,
// decimal.Decimal, the gobs records and any type passed to Register. Named
// struct types defined by callers must be registered with Register before
// they are saved or loaded.
//
// # SHARED REFERENCES
//
// The gob format does not preserve pointer identity. Two fields that point to
// the same object are restored as two equal but independent objects. Values
// with reference cycles cannot be encoded at all; they are rejected with
// ErrCycle before any encoding is attempted.
//
// # ERRORS
//
// SaveFile, LoadFile and the DB methods return errors that can be classified
// with errors.Is: os.ErrNotExist for missing files or names, ErrEncode for
// values that cannot be encoded (including ErrCycle) and ErrDecode for data
// that cannot be decoded. Other errors are I/O failures.
//
// Save and Load are log-and-continue wrappers around SaveFile and LoadFile:
// they print one status line per call through the standard log package and
// never return an error.
package valuestore
