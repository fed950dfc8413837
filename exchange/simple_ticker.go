// Copyright (c) 2025 BVK Chaitanya

package exchange

import (
	"github.com/shopspring/decimal"
)

type SimpleTicker struct {
	ServerTime RemoteTime
	Price      decimal.Decimal
}

var _ Ticker = &SimpleTicker{}

func (v *SimpleTicker) PricePoint() (decimal.Decimal, RemoteTime) {
	return v.Price, RemoteTime{Time: v.ServerTime.Time}
}
