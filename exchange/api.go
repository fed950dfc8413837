// Copyright (c) 2023 BVK Chaitanya

package exchange

import (
	"context"
	"io"

	"github.com/bvk/backtest/gobs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderID string

type RemoteTime = gobs.RemoteTime

type Ticker interface {
	PricePoint() (decimal.Decimal, RemoteTime)
}

type OrderUpdate interface {
	ServerID() string
	ClientID() uuid.UUID
	OrderStatus() string

	CreatedAt() RemoteTime
	UpdatedAt() RemoteTime

	ExecutedFee() decimal.Decimal
	ExecutedSize() decimal.Decimal
	ExecutedValue() decimal.Decimal

	IsDone() bool
}

type OrderDetail interface {
	OrderUpdate

	OrderSide() string
	FinishedAt() RemoteTime
}

type Product interface {
	io.Closer

	ProductID() string
	ExchangeName() string
	BaseMinSize() decimal.Decimal

	TickerCh() (ch <-chan Ticker, stopf func())
	OrderUpdatesCh() (ch <-chan *SimpleOrder, stopf func())

	LimitBuy(ctx context.Context, clientOrderID string, size, price decimal.Decimal) (OrderID, error)
	LimitSell(ctx context.Context, clientOrderID string, size, price decimal.Decimal) (OrderID, error)

	Get(ctx context.Context, id OrderID) (*SimpleOrder, error)
	Cancel(ctx context.Context, id OrderID) error
}

type Exchange interface {
	io.Closer

	ExchangeName() string

	// CanDedupOnClientUUID returns true if the exchange returns the existing
	// order for a repeated client order id instead of creating a new one.
	CanDedupOnClientUUID() bool

	OpenSpotProduct(ctx context.Context, productID string) (Product, error)

	GetSpotProduct(ctx context.Context, base, quote string) (*gobs.Product, error)
	GetOrder(ctx context.Context, productID string, id OrderID) (OrderDetail, error)
}
