// Copyright (c) 2023 BVK Chaitanya

package idgen

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestIDGen(t *testing.T) {
	seed := "unique message id"

	g1 := New(seed, 0)
	g1ids := make(map[int]uuid.UUID)
	for i := 0; i < 20; i++ {
		g1ids[i] = g1.NextID()
	}

	g2 := New(seed, 1)
	for i := 1; i < 21; i++ {
		if x, ok := g1ids[i]; ok {
			if id := g2.NextID(); x != id {
				t.Fatalf("want %v, got %v", x, id)
			}
		}
	}

	g3 := New("other seed", 0)
	if id := g3.NextID(); id == g1ids[0] {
		t.Fatalf("different seeds must produce different ids")
	}
}

func TestIDGenOffset(t *testing.T) {
	seed := "unique id"

	g1 := New(seed, 0)
	offset := rand.Intn(20)
	for i := 0; i < offset; i++ {
		g1.NextID()
	}

	g2 := New(seed, g1.Offset())
	if a, b := g1.NextID(), g2.NextID(); a != b {
		t.Fatalf("want %v, got %v", a, b)
	}
}

func TestIDGenValid(t *testing.T) {
	g := New(t.Name(), 0)
	id := g.NextID()
	if v := id.Version(); v != 3 {
		t.Fatalf("want version 3, got %d", v)
	}
	if v := id.Variant(); v != uuid.RFC4122 {
		t.Fatalf("want RFC4122 variant, got %v", v)
	}
	if _, err := uuid.Parse(id.String()); err != nil {
		t.Fatal(err)
	}
}

func TestIDGenConcurrent(t *testing.T) {
	g := New(t.Name(), 0)

	var mu sync.Mutex
	seen := make(map[uuid.UUID]bool)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := g.NextID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 400 {
		t.Fatalf("want 400 unique ids, got %d", len(seen))
	}
	if g.Offset() != 400 {
		t.Fatalf("want offset 400, got %d", g.Offset())
	}
}
