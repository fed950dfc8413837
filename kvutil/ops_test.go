// Copyright (c) 2025 BVK Chaitanya

package kvutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bvkgo/kv"
	"github.com/bvkgo/kv/kvmemdb"
	"github.com/google/go-cmp/cmp"
)

func setKeys(ctx context.Context, t *testing.T, db kv.Database, kvs map[string]string) {
	t.Helper()
	err := kv.WithReadWriter(ctx, db, func(ctx context.Context, rw kv.ReadWriter) error {
		for k, v := range kvs {
			if err := rw.Set(ctx, k, strings.NewReader(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestPathRange(t *testing.T) {
	if b, e := PathRange("/values/"); b != "/values/" || e != "/values0" {
		t.Fatalf("want [/values/, /values0), got [%s, %s)", b, e)
	}
	if b, e := PathRange("/"); b != "" || e != "" {
		t.Fatalf("want full range for root, got [%s, %s)", b, e)
	}
}

func TestKeysAndReadAll(t *testing.T) {
	ctx := context.Background()
	db := kvmemdb.New()
	setKeys(ctx, t, db, map[string]string{
		"/values/a":   "1",
		"/values/b/c": "2",
		"/other/x":    "3",
	})

	var keys []string
	var data []byte
	err := kv.WithReader(ctx, db, func(ctx context.Context, r kv.Reader) (err error) {
		begin, end := PathRange("/values")
		if keys, err = Keys(ctx, r, begin, end); err != nil {
			return err
		}
		data, err = ReadAll(ctx, r, "/values/b/c")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/values/a", "/values/b/c"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if string(data) != "2" {
		t.Fatalf("want 2, got %q", data)
	}

	err = kv.WithReader(ctx, db, func(ctx context.Context, r kv.Reader) error {
		_, err := ReadAll(ctx, r, "/values/missing")
		return err
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := kvmemdb.New()
	setKeys(ctx, t, src, map[string]string{"/a": "alpha", "/b": "beta"})

	var buf bytes.Buffer
	if err := kv.WithReader(ctx, src, func(ctx context.Context, r kv.Reader) error {
		return Export(ctx, r, &buf)
	}); err != nil {
		t.Fatal(err)
	}

	dst := kvmemdb.New()
	setKeys(ctx, t, dst, map[string]string{"/stale": "gone"})
	if err := kv.WithReadWriter(ctx, dst, func(ctx context.Context, rw kv.ReadWriter) error {
		if err := DeleteAll(ctx, rw); err != nil {
			return err
		}
		return Import(ctx, &buf, rw)
	}); err != nil {
		t.Fatal(err)
	}

	var keys []string
	if err := kv.WithReader(ctx, dst, func(ctx context.Context, r kv.Reader) (err error) {
		keys, err = Keys(ctx, r, "", "")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/a", "/b"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "backup.gob")

	src := kvmemdb.New()
	setKeys(ctx, t, src, map[string]string{"/x": "1", "/y": "2"})
	if err := BackupDB(ctx, src, file); err != nil {
		t.Fatal(err)
	}

	dst := kvmemdb.New()
	setKeys(ctx, t, dst, map[string]string{"/z": "3"})
	if err := RestoreDB(ctx, dst, file); err != nil {
		t.Fatal(err)
	}

	var keys []string
	if err := kv.WithReader(ctx, dst, func(ctx context.Context, r kv.Reader) (err error) {
		keys, err = Keys(ctx, r, "", "")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/x", "/y"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if err := RestoreDB(ctx, dst, filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}
