// Copyright (c) 2023 BVK Chaitanya

package gobs

// KeyValue is the record type for database backup files.
type KeyValue struct {
	Key   string
	Value []byte
}

// StoredValue wraps an arbitrary value so that gob can carry its dynamic
// type. Concrete types held in Value must be registered with gob.
type StoredValue struct {
	Value any
}

// ValueType describes an unnamed composite Go type (slice, array, map or
// pointer) in terms of named types, so that a reader can rebuild and
// register the type before decoding a StoredValue that holds it.
type ValueType struct {
	// Kind is one of "any", "named", "slice", "array", "map" or "pointer".
	Kind string

	// Name is the registered type name when Kind is "named".
	Name string

	// Len is the array length when Kind is "array".
	Len int

	Key  *ValueType
	Elem *ValueType
}

// StoredTypes is written in front of a StoredValue and lists the unnamed
// composite types held in its interfaces.
type StoredTypes struct {
	Types []*ValueType
}
