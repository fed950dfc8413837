// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/bvk/backtest/gobs"
)

var (
	// ErrEncode reports a value that could not be encoded.
	ErrEncode = errors.New("could not gob-encode value")

	// ErrDecode reports stored data that could not be decoded, which includes
	// corrupt or truncated data and data saved with an incompatible type.
	ErrDecode = errors.New("could not gob-decode value")

	// ErrCycle reports a value with a reference cycle. Errors with ErrCycle
	// also match ErrEncode.
	ErrCycle = errors.New("value has a reference cycle")
)

// encode gob-encodes gv after checking that root, the caller's value, has no
// reference cycles.
func encode(gv, root any) ([]byte, error) {
	if err := checkAcyclic(root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gv); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, gv any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(gv); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// encodeValue writes a gobs.StoredTypes record with the composite types
// held in the value followed by the gobs.StoredValue envelope.
func encodeValue(value any) ([]byte, error) {
	types, err := inspect(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	descs, err := registerComposites(types)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(&gobs.StoredTypes{Types: descs}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := encoder.Encode(&gobs.StoredValue{Value: value}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func decodeValue(data []byte) (any, error) {
	decoder := gob.NewDecoder(bytes.NewReader(data))

	st := new(gobs.StoredTypes)
	if err := decoder.Decode(st); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := registerDescribed(st.Types); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	sv := new(gobs.StoredValue)
	if err := decoder.Decode(sv); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return sv.Value, nil
}

func encodeAs[T any](value *T) ([]byte, error) {
	return encode(value, value)
}

func decodeAs[T any](data []byte) (*T, error) {
	v := new(T)
	if err := decode(data, v); err != nil {
		return nil, err
	}
	return v, nil
}
