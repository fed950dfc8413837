// Copyright (c) 2025 BVK Chaitanya

package cmdutil

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// InputFlags selects a json or yaml document as the input value for a
// command. Input is read from stdin in json format when no flag is given.
type InputFlags struct {
	jsonFile string
	yamlFile string
}

func (f *InputFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.jsonFile, "json", "", "file with the input json document (default stdin)")
	fset.StringVar(&f.yamlFile, "yaml", "", "file with the input yaml document")
}

// ReadValue reads and decodes the selected input document.
func (f *InputFlags) ReadValue() (any, error) {
	if len(f.jsonFile) != 0 && len(f.yamlFile) != 0 {
		return nil, fmt.Errorf("json and yaml flags cannot be used together: %w", os.ErrInvalid)
	}
	if len(f.yamlFile) != 0 {
		in, err := OpenInput(f.yamlFile)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		return DecodeYAML(in)
	}

	in, err := OpenInput(f.jsonFile)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return DecodeJSON(in)
}

// DecodeYAML reads one yaml document from r into generic Go values. Mappings
// become map[string]any, sequences become []any and integers become int64.
func DecodeYAML(r io.Reader) (any, error) {
	var value any
	if err := yaml.NewDecoder(r).Decode(&value); err != nil {
		return nil, fmt.Errorf("could not decode yaml document: %w", err)
	}
	return normalizeYAML(value)
}

func normalizeYAML(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case map[string]any:
		for k, item := range x {
			nv, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			x[k] = nv
		}
		return x, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, item := range x {
			s, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml mapping key %v is not a string: %w", k, os.ErrInvalid)
			}
			nv, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			m[s] = nv
		}
		return m, nil
	case []any:
		for i, item := range x {
			nv, err := normalizeYAML(item)
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
