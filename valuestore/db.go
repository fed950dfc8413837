// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bvk/backtest/kvutil"
	"github.com/bvkgo/kv"
)

// ValuesKeyspace is the database directory that holds the named values.
const ValuesKeyspace = "/values"

// DB stores named values in a key-value database. Each value is saved under
// the key ValuesKeyspace/<name>.
type DB struct {
	db kv.Database
}

func NewDB(db kv.Database) *DB {
	return &DB{db: db}
}

// NameKey returns the database key for a value name.
func NameKey(name string) (string, error) {
	if len(name) == 0 {
		return "", fmt.Errorf("value name cannot be empty: %w", os.ErrInvalid)
	}
	key := path.Join(ValuesKeyspace, name)
	if !strings.HasPrefix(key, ValuesKeyspace+"/") {
		return "", fmt.Errorf("value name %q is outside the values keyspace: %w", name, os.ErrInvalid)
	}
	return key, nil
}

func (d *DB) Save(ctx context.Context, name string, value any) error {
	key, err := NameKey(name)
	if err != nil {
		return err
	}
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	return d.set(ctx, key, data)
}

func (d *DB) Load(ctx context.Context, name string) (any, error) {
	key, err := NameKey(name)
	if err != nil {
		return nil, err
	}
	data, err := d.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeValue(data)
}

// Delete removes the named value. Returns os.ErrNotExist if the name is not
// found.
func (d *DB) Delete(ctx context.Context, name string) error {
	key, err := NameKey(name)
	if err != nil {
		return err
	}
	del := func(ctx context.Context, rw kv.ReadWriter) error {
		if _, err := rw.Get(ctx, key); err != nil {
			return fmt.Errorf("could not find value %q: %w", name, err)
		}
		return rw.Delete(ctx, key)
	}
	return kv.WithReadWriter(ctx, d.db, del)
}

// List returns all value names in ascending order.
func (d *DB) List(ctx context.Context) (names []string, err error) {
	begin, end := kvutil.PathRange(ValuesKeyspace)
	err = kv.WithReader(ctx, d.db, func(ctx context.Context, r kv.Reader) error {
		keys, err := kvutil.Keys(ctx, r, begin, end)
		if err != nil {
			return err
		}
		for _, k := range keys {
			names = append(names, strings.TrimPrefix(k, ValuesKeyspace+"/"))
		}
		return nil
	})
	return names, err
}

func (d *DB) set(ctx context.Context, key string, data []byte) error {
	return kv.WithReadWriter(ctx, d.db, func(ctx context.Context, rw kv.ReadWriter) error {
		return rw.Set(ctx, key, bytes.NewReader(data))
	})
}

func (d *DB) get(ctx context.Context, key string) (data []byte, err error) {
	err = kv.WithReader(ctx, d.db, func(ctx context.Context, r kv.Reader) error {
		data, err = kvutil.ReadAll(ctx, r, key)
		return err
	})
	return data, err
}

// SaveDBAs is like DB.Save, but the value is saved with its static type.
func SaveDBAs[T any](ctx context.Context, d *DB, name string, value *T) error {
	key, err := NameKey(name)
	if err != nil {
		return err
	}
	data, err := encodeAs(value)
	if err != nil {
		return err
	}
	return d.set(ctx, key, data)
}

// LoadDBAs reads a value saved by SaveDBAs.
func LoadDBAs[T any](ctx context.Context, d *DB, name string) (*T, error) {
	key, err := NameKey(name)
	if err != nil {
		return nil, err
	}
	data, err := d.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeAs[T](data)
}
