// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"errors"
	"testing"
	"time"

	"github.com/bvk/backtest/gobs"
	"github.com/shopspring/decimal"
)

func TestCheckAcyclic(t *testing.T) {
	shared := []int{1, 2, 3}
	leaf := &testLeaf{Value: 1}

	good := []any{
		nil,
		42,
		"text",
		map[string]any{"a": shared, "b": shared},
		&testPair{A: leaf, B: leaf},
		[]*testLeaf{leaf, leaf, leaf},
		[2]*testLeaf{leaf, leaf},
		time.Now(),
		decimal.NewFromFloat(1.5),
		&gobs.Candle{StartTime: gobs.RemoteTime{Time: time.Now()}},
	}
	for i, v := range good {
		if err := checkAcyclic(v); err != nil {
			t.Fatalf("%d: want nil, got %v", i, err)
		}
	}

	a := &testNode{Name: "a"}
	b := &testNode{Name: "b", Next: a}
	a.Next = b

	m := map[string]any{}
	inner := []any{m}
	m["inner"] = inner

	bad := []any{
		a,
		m,
		inner,
		map[string]any{"wrapped": a},
	}
	for i, v := range bad {
		if err := checkAcyclic(v); !errors.Is(err, ErrCycle) {
			t.Fatalf("%d: wanted ErrCycle, got %v", i, err)
		}
	}
}
