// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func anyOf[T any](g *rapid.Generator[T]) *rapid.Generator[any] {
	return rapid.Map(g, func(v T) any { return v })
}

// leafGen generates the primitive and flat container values a caller would
// usually store.
func leafGen() *rapid.Generator[any] {
	return rapid.OneOf(
		anyOf(rapid.Int()),
		anyOf(rapid.String()),
		anyOf(rapid.Bool()),
		anyOf(rapid.Float64Range(-1e9, 1e9)),
		anyOf(rapid.SliceOf(rapid.Int())),
		anyOf(rapid.SliceOf(rapid.String())),
		anyOf(rapid.MapOf(rapid.String(), rapid.Int())),
		anyOf(rapid.SliceOf(rapid.SliceOf(rapid.Int()))),
		anyOf(rapid.MapOf(rapid.String(), rapid.SliceOf(rapid.String()))),
		anyOf(rapid.MapOf(rapid.Int(), rapid.Bool())),
		anyOf(tripleGen()),
	)
}

// tripleGen generates fixed size arrays, the Go form of a tuple.
func tripleGen() *rapid.Generator[[3]float64] {
	return rapid.Custom(func(t *rapid.T) [3]float64 {
		f := rapid.Float64Range(-1e9, 1e9)
		return [3]float64{f.Draw(t, "a"), f.Draw(t, "b"), f.Draw(t, "c")}
	})
}

// nestedGen generates two levels of generic and typed maps and lists.
func nestedGen() *rapid.Generator[any] {
	list := anyOf(rapid.SliceOfN(leafGen(), 0, 5))
	dict := anyOf(rapid.MapOfN(rapid.String(), leafGen(), 0, 5))
	records := anyOf(rapid.SliceOfN(rapid.MapOfN(rapid.String(), leafGen(), 0, 3), 0, 3))
	return rapid.OneOf(leafGen(), list, dict, records)
}

func TestRoundTripProperty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "property.gob")

	rapid.Check(t, func(rt *rapid.T) {
		want := rapid.MapOfN(rapid.String(), nestedGen(), 0, 8).Draw(rt, "value")

		if err := SaveFile(file, want); err != nil {
			rt.Fatal(err)
		}
		got, err := LoadFile(file)
		if err != nil {
			rt.Fatal(err)
		}
		if diff := cmp.Diff(any(want), got, cmpopts.EquateEmpty()); diff != "" {
			rt.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
		}
	})
}
