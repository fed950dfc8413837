// Copyright (c) 2025 BVK Chaitanya

// Package offline implements an exchange that never touches the network. It
// is meant for backtesting: market data queries return empty or default
// values (or static data from an optional snapshot) and orders are simulated
// locally.
package offline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/bvk/backtest/exchange"
	"github.com/bvk/backtest/gobs"
	"github.com/bvk/backtest/idgen"
	"github.com/bvk/backtest/timerange"
	"github.com/bvk/backtest/valuestore"
	"github.com/shopspring/decimal"
)

const (
	DefaultName          = "offline"
	DefaultStakeCurrency = "USD"
)

type LeverageTier struct {
	MinNotional decimal.Decimal
	MaxNotional decimal.Decimal

	MaintenanceMarginRate decimal.Decimal
	MaxLeverage           decimal.Decimal
}

type Exchange struct {
	opts Options

	snapshot *gobs.OfflineSnapshot

	orderIDs *idgen.Generator

	mu sync.Mutex

	productMap map[string]*Product

	// orderProductMap maps dry-run order ids to the product that created them.
	orderProductMap map[exchange.OrderID]*Product

	// orderSequence holds the dry-run order ids in creation order.
	orderSequence []exchange.OrderID
}

var _ exchange.Exchange = &Exchange{}

// New creates an offline exchange. Snapshot, when configured, is loaded once
// here; no other I/O is performed by the exchange.
func New(ctx context.Context, opts *Options) (*Exchange, error) {
	if opts == nil {
		opts = new(Options)
	}
	opts = opts.clone()
	opts.setDefaults()

	snapshot, err := loadSnapshot(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(opts.Name) == 0 {
		opts.Name = DefaultName
		if len(snapshot.ExchangeName) != 0 {
			opts.Name = snapshot.ExchangeName
		}
	}
	if len(opts.StakeCurrency) == 0 {
		opts.StakeCurrency = DefaultStakeCurrency
		if len(snapshot.StakeCurrency) != 0 {
			opts.StakeCurrency = snapshot.StakeCurrency
		}
	}

	v := &Exchange{
		opts:            *opts,
		snapshot:        snapshot,
		orderIDs:        idgen.New(opts.OrderIDSeed, 0),
		productMap:      make(map[string]*Product),
		orderProductMap: make(map[exchange.OrderID]*Product),
	}
	return v, nil
}

func loadSnapshot(ctx context.Context, opts *Options) (*gobs.OfflineSnapshot, error) {
	if len(opts.SnapshotPath) != 0 {
		s, err := valuestore.LoadFileAs[gobs.OfflineSnapshot](opts.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("could not load offline snapshot from file: %w", err)
		}
		return s, nil
	}
	if opts.Database != nil && len(opts.SnapshotName) != 0 {
		s, err := valuestore.LoadDBAs[gobs.OfflineSnapshot](ctx, valuestore.NewDB(opts.Database), opts.SnapshotName)
		if err != nil {
			return nil, fmt.Errorf("could not load offline snapshot %q from database: %w", opts.SnapshotName, err)
		}
		return s, nil
	}
	return new(gobs.OfflineSnapshot), nil
}

func (ex *Exchange) Close() error {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	clear(ex.productMap)
	return nil
}

func (ex *Exchange) ExchangeName() string {
	return ex.opts.Name
}

func (ex *Exchange) CanDedupOnClientUUID() bool {
	return true
}

// OpenSpotProduct returns the product with the given id. Markets are never
// fetched from a server, so unknown product ids are accepted with default
// metadata.
func (ex *Exchange) OpenSpotProduct(ctx context.Context, productID string) (exchange.Product, error) {
	if len(productID) == 0 {
		return nil, fmt.Errorf("product id cannot be empty: %w", os.ErrInvalid)
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	if p, ok := ex.productMap[productID]; ok {
		return p, nil
	}
	data := ex.snapshot.FindProduct(productID)
	if data == nil {
		data = &gobs.Product{ProductID: productID, Status: "online"}
	}
	p := newProduct(ex, data)
	ex.productMap[productID] = p
	return p, nil
}

func (ex *Exchange) GetSpotProduct(ctx context.Context, base, quote string) (*gobs.Product, error) {
	productID := base + "-" + quote
	p := ex.snapshot.FindProduct(productID)
	if p == nil {
		return nil, fmt.Errorf("product %q not found: %w", productID, os.ErrNotExist)
	}
	return gobs.Clone(p)
}

// ListProducts returns the snapshot products.
func (ex *Exchange) ListProducts(ctx context.Context) ([]*gobs.Product, error) {
	var ps []*gobs.Product
	for _, p := range ex.snapshot.Products {
		c, err := gobs.Clone(p)
		if err != nil {
			return nil, err
		}
		ps = append(ps, c)
	}
	return ps, nil
}

func (ex *Exchange) GetOrder(ctx context.Context, productID string, id exchange.OrderID) (exchange.OrderDetail, error) {
	ex.mu.Lock()
	p, ok := ex.orderProductMap[id]
	ex.mu.Unlock()

	if !ok || (len(productID) != 0 && p.ProductID() != productID) {
		return nil, fmt.Errorf("order %q not found: %w", id, os.ErrNotExist)
	}
	order, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (ex *Exchange) closeProduct(p *Product) {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	if ex.productMap[p.ProductID()] == p {
		delete(ex.productMap, p.ProductID())
	}
}

func (ex *Exchange) addOrder(id exchange.OrderID, p *Product) {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	ex.orderProductMap[id] = p
	ex.orderSequence = append(ex.orderSequence, id)
}

// Features returns the spot trading capabilities. Capabilities that need a
// live connection are disabled.
func (ex *Exchange) Features() map[string]bool {
	return map[string]bool{
		"stoploss_on_exchange": false,
		"ws_enabled":           false,
	}
}

// FuturesFeatures returns the futures trading capabilities.
func (ex *Exchange) FuturesFeatures() map[string]bool {
	return map[string]bool{
		"ws_enabled": false,
	}
}

// MarketsLoaded always returns true; there is nothing to load.
func (ex *Exchange) MarketsLoaded() bool {
	return true
}

func (ex *Exchange) RequiredCandleCallCount() int {
	return 1
}

// ProxyCoin returns the stake currency.
func (ex *Exchange) ProxyCoin() string {
	return ex.opts.StakeCurrency
}

// Tickers always returns an empty map.
func (ex *Exchange) Tickers(ctx context.Context, productIDs []string) (map[string]exchange.Ticker, error) {
	return map[string]exchange.Ticker{}, nil
}

// HistoricCandles returns copies of the snapshot candles for the product
// that start in the [since, until) range. A zero until selects all candles
// after since. Returns an empty list when the snapshot has no candles for the
// product.
func (ex *Exchange) HistoricCandles(ctx context.Context, productID string, since, until time.Time) ([]*gobs.Candle, error) {
	var result []*gobs.Candle
	r := &timerange.Range{Begin: since, End: until}
	if cs, ok := ex.snapshot.CandlesMap[productID]; ok && cs != nil {
		for _, c := range cs.Candles {
			if c != nil && r.InRange(c.StartTime.Time) {
				clone := *c
				result = append(result, &clone)
			}
		}
	}
	if len(result) == 0 {
		slog.InfoContext(ctx, "returning empty candles list", "exchange", ex.opts.Name, "product", productID, "since", since, "until", until)
		return []*gobs.Candle{}, nil
	}
	return result, nil
}

// FundingRates always returns an empty map.
func (ex *Exchange) FundingRates(ctx context.Context, productIDs []string) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}

// LeverageTiers always returns an empty map.
func (ex *Exchange) LeverageTiers(ctx context.Context) (map[string][]*LeverageTier, error) {
	return map[string][]*LeverageTier{}, nil
}

// DryRunLiquidationPrice returns an invalid (null) price; liquidation is not
// simulated.
func (ex *Exchange) DryRunLiquidationPrice(productID string, openRate decimal.Decimal, isShort bool, amount, stakeAmount, leverage, walletBalance decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// TradeHistory returns an empty trade list and "0" as the pagination id.
func (ex *Exchange) TradeHistory(ctx context.Context, productID string, since time.Time) ([]*gobs.Order, string, error) {
	return []*gobs.Order{}, "0", nil
}

// DryRunOrders returns all orders created on this exchange in the order
// they were created.
func (ex *Exchange) DryRunOrders() []*gobs.Order {
	ex.mu.Lock()
	ids := slices.Clone(ex.orderSequence)
	products := make([]*Product, len(ids))
	for i, id := range ids {
		products[i] = ex.orderProductMap[id]
	}
	ex.mu.Unlock()

	orders := make([]*gobs.Order, 0, len(ids))
	for i, id := range ids {
		if order := products[i].gobOrder(id); order != nil {
			orders = append(orders, order)
		}
	}
	return orders
}
