// Copyright (c) 2025 BVK Chaitanya

package valuestore

import (
	"encoding/gob"
	"reflect"
	"time"

	"github.com/bvk/backtest/gobs"
	"github.com/shopspring/decimal"
)

func init() {
	Register(map[string]any{})
	Register([]any{})
	Register(map[string]string{})
	Register(map[string]int{})
	Register(map[string]int64{})
	Register(map[string]float64{})
	Register(map[string]bool{})
	Register(map[int]any{})

	Register(time.Time{})
	Register(time.Duration(0))
	Register(decimal.Decimal{})

	Register(gobs.RemoteTime{})
	Register(new(gobs.Product))
	Register(new(gobs.Candle))
	Register(new(gobs.Candles))
	Register(new(gobs.Order))
	Register(new(gobs.OfflineSnapshot))
	Register([]*gobs.Product{})
	Register([]*gobs.Candle{})
	Register([]*gobs.Order{})
}

// Register records the concrete type of value so that it can be saved and
// loaded when it is held inside an interface (for example, as an element of
// a map[string]any). Registering the same type more than once is harmless.
func Register(value any) {
	gob.Register(value)
	addNamedType(reflect.TypeOf(value))
}
