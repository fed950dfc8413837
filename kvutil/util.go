// Copyright (c) 2023 BVK Chaitanya

package kvutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/bvkgo/kv"
)

// PathRange returns the key range that covers all keys under the dir.
func PathRange(dir string) (begin string, end string) {
	dir = path.Clean(dir)
	if dir == "/" {
		return "", ""
	}
	begin = dir + string('/')
	end = dir + string('/'+1)
	return begin, end
}

// Keys returns all keys in the given range in ascending order.
func Keys(ctx context.Context, r kv.Reader, begin, end string) ([]string, error) {
	it, err := r.Ascend(ctx, begin, end)
	if err != nil {
		return nil, err
	}
	defer kv.Close(it)

	var keys []string
	for k, _, err := it.Fetch(ctx, false); err == nil; k, _, err = it.Fetch(ctx, true) {
		keys = append(keys, k)
	}
	if _, _, err := it.Fetch(ctx, false); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not complete ascend: %w", err)
	}
	return keys, nil
}

// ReadAll returns the full value at the key.
func ReadAll(ctx context.Context, g kv.Getter, key string) ([]byte, error) {
	value, err := g.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not Get from %q: %w", key, err)
	}
	data, err := io.ReadAll(value)
	if err != nil {
		return nil, fmt.Errorf("could not read value at key %q: %w", key, err)
	}
	return data, nil
}
