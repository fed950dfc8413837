// Copyright (c) 2025 BVK Chaitanya

package gobs

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Clone returns a deep copy of a gob record by encoding and decoding it.
// Unexported fields are not copied.
func Clone[PT *T, T any](v PT) (PT, error) {
	if v == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("could not encode %T: %w", v, err)
	}
	x := new(T)
	if err := gob.NewDecoder(&buf).Decode(x); err != nil {
		return nil, fmt.Errorf("could not decode %T: %w", x, err)
	}
	return x, nil
}
