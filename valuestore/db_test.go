// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bvk/backtest/gobs"
	"github.com/bvk/backtest/kvutil"
	"github.com/bvkgo/kv/kvmemdb"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestDB(t *testing.T) {
	ctx := context.Background()
	store := NewDB(kvmemdb.New())

	if err := store.Save(ctx, "example", exampleValue()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "nested/answer", 42); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(ctx, "example")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(any(exampleValue()), got); diff != "" {
		t.Fatalf("loaded value mismatch (-want +got):\n%s", diff)
	}

	names, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"example", "nested/answer"}; !slices.Equal(names, want) {
		t.Fatalf("want %v, got %v", want, names)
	}

	if err := store.Delete(ctx, "example"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "example"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("wanted ErrNotExist, got %v", err)
	}
	if err := store.Delete(ctx, "example"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("wanted ErrNotExist, got %v", err)
	}
}

func TestDBInvalidNames(t *testing.T) {
	ctx := context.Background()
	store := NewDB(kvmemdb.New())

	for _, name := range []string{"", "..", "../escape"} {
		if err := store.Save(ctx, name, 1); !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("name %q: wanted ErrInvalid, got %v", name, err)
		}
	}
}

func TestDBEncodeErrors(t *testing.T) {
	ctx := context.Background()
	store := NewDB(kvmemdb.New())

	node := &testNode{Name: "loop"}
	node.Next = node
	if err := SaveDBAs(ctx, store, "loop", node); !errors.Is(err, ErrCycle) {
		t.Fatalf("wanted ErrCycle, got %v", err)
	}
	if err := store.Save(ctx, "func", map[string]any{"f": func() {}}); !errors.Is(err, ErrEncode) {
		t.Fatalf("wanted ErrEncode, got %v", err)
	}
	if _, err := store.List(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestDBBackupRestore(t *testing.T) {
	ctx := context.Background()
	db := kvmemdb.New()
	store := NewDB(db)

	snap := &gobs.OfflineSnapshot{
		ExchangeName:  "offline",
		StakeCurrency: "USD",
		Products: []*gobs.Product{
			{ProductID: "BTC-USD", BaseMinSize: decimal.NewFromFloat(0.0001)},
		},
	}
	if err := SaveDBAs(ctx, store, "snapshot", snap); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "numbers", []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	backup := filepath.Join(t.TempDir(), "db.backup")
	if err := kvutil.BackupDB(ctx, db, backup); err != nil {
		t.Fatal(err)
	}

	restored := kvmemdb.New()
	other := NewDB(restored)
	if err := other.Save(ctx, "stale", "removed by restore"); err != nil {
		t.Fatal(err)
	}
	if err := kvutil.RestoreDB(ctx, restored, backup); err != nil {
		t.Fatal(err)
	}

	names, err := other.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"numbers", "snapshot"}; !slices.Equal(names, want) {
		t.Fatalf("want %v, got %v", want, names)
	}
	got, err := LoadDBAs[gobs.OfflineSnapshot](ctx, other, "snapshot")
	if err != nil {
		t.Fatal(err)
	}
	if p := got.FindProduct("BTC-USD"); p == nil || !p.BaseMinSize.Equal(snap.Products[0].BaseMinSize) {
		t.Fatalf("want restored product, got %#v", got.Products)
	}
}
