// Copyright (c) 2025 BVK Chaitanya

package cmdutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DecodeJSON reads exactly one JSON document from r into generic Go values.
// Objects become map[string]any, arrays become []any and numbers become
// int64 when they are integral or float64 otherwise.
func DecodeJSON(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("could not decode json document: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input has trailing data after the json document: %w", os.ErrInvalid)
	}
	return normalizeJSON(value)
}

func normalizeJSON(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("could not convert json number %q: %w", x, err)
		}
		return f, nil
	case map[string]any:
		for k, item := range x {
			nv, err := normalizeJSON(item)
			if err != nil {
				return nil, err
			}
			x[k] = nv
		}
		return x, nil
	case []any:
		for i, item := range x {
			nv, err := normalizeJSON(item)
			if err != nil {
				return nil, err
			}
			x[i] = nv
		}
		return x, nil
	default:
		return v, nil
	}
}

// PrintJSON writes the value to stdout as JSON. Output is indented when
// stdout is a terminal.
func PrintJSON(v any) error {
	var data []byte
	var err error
	if term.IsTerminal(int(os.Stdout.Fd())) {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("could not marshal value to json: %w", err)
	}
	fmt.Printf("%s\n", data)
	return nil
}

// OpenInput returns a reader for the named file or stdin when file is empty
// or "-".
func OpenInput(file string) (io.ReadCloser, error) {
	if len(file) == 0 || file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fp, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open input file %q: %w", file, err)
	}
	return fp, nil
}
