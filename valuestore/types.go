// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"encoding/gob"
	"fmt"
	"reflect"
	"sync"

	"github.com/bvk/backtest/gobs"
)

// maxTypeDepth limits the nesting of stored type descriptions.
const maxTypeDepth = 64

var (
	namedTypesMu sync.RWMutex
	namedTypes   = make(map[string]reflect.Type)

	anyType = reflect.TypeFor[any]()
)

func init() {
	for _, v := range []any{
		false, "",
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0), uintptr(0),
		float32(0), float64(0), complex64(0), complex128(0),
	} {
		addNamedType(reflect.TypeOf(v))
	}
}

func typeName(t reflect.Type) string {
	if len(t.PkgPath()) == 0 {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// addNamedType records the named type behind t, so that stored type
// descriptions can refer to it by name.
func addNamedType(t reflect.Type) {
	for t != nil && t.Kind() == reflect.Pointer && len(t.Name()) == 0 {
		t = t.Elem()
	}
	if t == nil || len(t.Name()) == 0 {
		return
	}

	namedTypesMu.Lock()
	defer namedTypesMu.Unlock()

	namedTypes[typeName(t)] = t
}

func lookupNamedType(name string) (reflect.Type, bool) {
	namedTypesMu.RLock()
	defer namedTypesMu.RUnlock()

	t, ok := namedTypes[name]
	return t, ok
}

// isComposite returns true for unnamed slice, array, map and pointer types,
// which gob can only carry in an interface after they are registered.
func isComposite(t reflect.Type) bool {
	if len(t.Name()) != 0 {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	case reflect.Pointer:
		// Pointers to named types are registered along with the named type.
		return len(t.Elem().Name()) == 0
	}
	return false
}

// describeType returns the description for t. Returns false if t refers to
// a type that is not known by name, in which case gob reports the
// unregistered type.
func describeType(t reflect.Type) (*gobs.ValueType, bool) {
	if t == anyType {
		return &gobs.ValueType{Kind: "any"}, true
	}
	if len(t.Name()) != 0 {
		name := typeName(t)
		if _, ok := lookupNamedType(name); !ok {
			return nil, false
		}
		return &gobs.ValueType{Kind: "named", Name: name}, true
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Pointer:
		elem, ok := describeType(t.Elem())
		if !ok {
			return nil, false
		}
		kind := "slice"
		if t.Kind() == reflect.Pointer {
			kind = "pointer"
		}
		return &gobs.ValueType{Kind: kind, Elem: elem}, true
	case reflect.Array:
		elem, ok := describeType(t.Elem())
		if !ok {
			return nil, false
		}
		return &gobs.ValueType{Kind: "array", Len: t.Len(), Elem: elem}, true
	case reflect.Map:
		key, ok := describeType(t.Key())
		if !ok {
			return nil, false
		}
		elem, ok := describeType(t.Elem())
		if !ok {
			return nil, false
		}
		return &gobs.ValueType{Kind: "map", Key: key, Elem: elem}, true
	}
	return nil, false
}

// buildType is the inverse of describeType.
func buildType(d *gobs.ValueType, depth int) (reflect.Type, error) {
	if d == nil {
		return nil, fmt.Errorf("type description is missing")
	}
	if depth > maxTypeDepth {
		return nil, fmt.Errorf("type description is nested too deep")
	}

	switch d.Kind {
	case "any":
		return anyType, nil
	case "named":
		t, ok := lookupNamedType(d.Name)
		if !ok {
			return nil, fmt.Errorf("type %q is not registered", d.Name)
		}
		return t, nil
	case "slice", "pointer", "array":
		elem, err := buildType(d.Elem, depth+1)
		if err != nil {
			return nil, err
		}
		switch d.Kind {
		case "slice":
			return reflect.SliceOf(elem), nil
		case "pointer":
			return reflect.PointerTo(elem), nil
		}
		if d.Len < 0 {
			return nil, fmt.Errorf("array length %d is invalid", d.Len)
		}
		return reflect.ArrayOf(d.Len, elem), nil
	case "map":
		key, err := buildType(d.Key, depth+1)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, fmt.Errorf("map key type %s is not comparable", key)
		}
		elem, err := buildType(d.Elem, depth+1)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	}
	return nil, fmt.Errorf("unknown type kind %q", d.Kind)
}

// registerType registers the type with gob. Conflicting registrations made
// directly through the gob package are reported as errors.
func registerType(t reflect.Type) (status error) {
	defer func() {
		if r := recover(); r != nil {
			status = fmt.Errorf("could not register type %s: %v", t, r)
		}
	}()

	gob.Register(reflect.Zero(t).Interface())
	return nil
}

// registerComposites registers the composite types found in a value and
// returns their descriptions.
func registerComposites(types []reflect.Type) ([]*gobs.ValueType, error) {
	var descs []*gobs.ValueType
	for _, t := range types {
		d, ok := describeType(t)
		if !ok {
			continue
		}
		if err := registerType(t); err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// registerDescribed rebuilds and registers the described types.
func registerDescribed(descs []*gobs.ValueType) error {
	for _, d := range descs {
		t, err := buildType(d, 0)
		if err != nil {
			return err
		}
		if !isComposite(t) {
			return fmt.Errorf("stored type %s is not a composite type", t)
		}
		if err := registerType(t); err != nil {
			return err
		}
	}
	return nil
}
