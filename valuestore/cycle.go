// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"encoding"
	"encoding/gob"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	gobEncoderType      = reflect.TypeFor[gob.GobEncoder]()
	binaryMarshalerType = reflect.TypeFor[encoding.BinaryMarshaler]()
)

type refKey struct {
	ptr unsafe.Pointer
	typ reflect.Type
	len int
}

// cycleChecker walks a value the way gob does and detects references that
// lead back to an object which is still being visited. Shared references
// that do not form a cycle are allowed; they are visited once. It also
// collects the composite types held in interfaces.
type cycleChecker struct {
	// done is false while the object is on the current path and true after
	// all of its children are visited.
	done map[refKey]bool

	types   []reflect.Type
	typeSet map[reflect.Type]struct{}
}

func checkAcyclic(v any) error {
	_, err := inspect(v)
	return err
}

// inspect checks that v has no reference cycles and returns the composite
// types that gob will find in interfaces, including v's own type.
func inspect(v any) ([]reflect.Type, error) {
	c := &cycleChecker{
		done:    make(map[refKey]bool),
		typeSet: make(map[reflect.Type]struct{}),
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() {
		c.addType(rv.Type())
	}
	if err := c.walk(rv); err != nil {
		return nil, err
	}
	return c.types, nil
}

func (c *cycleChecker) addType(t reflect.Type) {
	if !isComposite(t) {
		return
	}
	if _, ok := c.typeSet[t]; ok {
		return
	}
	c.typeSet[t] = struct{}{}
	c.types = append(c.types, t)
}

func marshalsItself(t reflect.Type) bool {
	if t.Implements(gobEncoderType) || t.Implements(binaryMarshalerType) {
		return true
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(gobEncoderType) || pt.Implements(binaryMarshalerType)
}

func (c *cycleChecker) walk(v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	t := v.Type()
	if t.Kind() != reflect.Interface && marshalsItself(t) {
		return nil
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		c.addType(v.Elem().Type())
		return c.walk(v.Elem())

	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
		key := refKey{ptr: v.UnsafePointer(), typ: t}
		if v.Kind() == reflect.Slice {
			key.len = v.Len()
		}
		if done, ok := c.done[key]; ok {
			if !done {
				return fmt.Errorf("%w (through a %s)", ErrCycle, t)
			}
			return nil
		}
		c.done[key] = false
		if err := c.walkChildren(v); err != nil {
			return err
		}
		c.done[key] = true
		return nil

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := c.walk(v.Field(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := c.walk(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func (c *cycleChecker) walkChildren(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer:
		return c.walk(v.Elem())
	case reflect.Map:
		for it := v.MapRange(); it.Next(); {
			if err := c.walk(it.Key()); err != nil {
				return err
			}
			if err := c.walk(it.Value()); err != nil {
				return err
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := c.walk(v.Index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
