// Copyright (c) 2023 BVK Chaitanya

// Package idgen creates reproducible sequences of uuids. Two generators with
// the same seed produce the same ids in the same order, which makes dry-run
// order ids stable across repeated backtests.
package idgen

import (
	"crypto/md5"
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

type Generator struct {
	mu sync.Mutex

	base uuid.UUID
	next uint64
}

// New returns a generator for the seed that starts at the given offset in
// the sequence.
func New(seed string, offset uint64) *Generator {
	return &Generator{
		base: uuid.UUID(md5.Sum([]byte(seed))),
		next: offset,
	}
}

// Offset returns the position of the next id in the sequence.
func (v *Generator) Offset() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.next
}

func (v *Generator) NextID() uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := IDAt(v.base, v.next)
	v.next++
	return id
}

// IDAt returns the id at position n in the sequence for base.
func IDAt(base uuid.UUID, n uint64) uuid.UUID {
	var buf [16 + 8]byte
	copy(buf[:16], base[:])
	binary.BigEndian.PutUint64(buf[16:], n)

	id := uuid.UUID(md5.Sum(buf[:]))
	id[6] = (id[6] & 0x0f) | 0x30 // version 3
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}
