// Copyright (c) 2025 BVK Chaitanya

package offline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bvk/backtest/exchange"
	"github.com/bvk/backtest/gobs"
	"github.com/bvkgo/topic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	exchange *Exchange

	productData *gobs.Product

	prodTickerTopic *topic.Topic[exchange.Ticker]
	prodOrderTopic  *topic.Topic[*exchange.SimpleOrder]

	mu sync.Mutex

	orderMap map[exchange.OrderID]*exchange.SimpleOrder

	clientOrderMap map[uuid.UUID]*exchange.SimpleOrder
}

var _ exchange.Product = &Product{}

func newProduct(ex *Exchange, data *gobs.Product) *Product {
	return &Product{
		exchange:        ex,
		productData:     data,
		prodTickerTopic: topic.New[exchange.Ticker](),
		prodOrderTopic:  topic.New[*exchange.SimpleOrder](),
		orderMap:        make(map[exchange.OrderID]*exchange.SimpleOrder),
		clientOrderMap:  make(map[uuid.UUID]*exchange.SimpleOrder),
	}
}

func (p *Product) Close() error {
	p.exchange.closeProduct(p)
	return nil
}

func (p *Product) ProductID() string {
	return p.productData.ProductID
}

func (p *Product) ExchangeName() string {
	return p.exchange.ExchangeName()
}

func (p *Product) BaseMinSize() decimal.Decimal {
	return p.productData.BaseMinSize
}

func (p *Product) TickerCh() (<-chan exchange.Ticker, func()) {
	sub, ch, _ := p.prodTickerTopic.Subscribe(1, true /* includeRecent */)
	return ch, sub.Unsubscribe
}

func (p *Product) OrderUpdatesCh() (<-chan *exchange.SimpleOrder, func()) {
	sub, ch, _ := p.prodOrderTopic.Subscribe(0, true /* includeRecent */)
	return ch, sub.Unsubscribe
}

// PushTicker publishes a price to the ticker channel subscribers. Backtest
// drivers use it to replay historic prices.
func (p *Product) PushTicker(price decimal.Decimal, at time.Time) {
	p.prodTickerTopic.Send(&exchange.SimpleTicker{
		ServerTime: exchange.RemoteTime{Time: at},
		Price:      price,
	})
}

func (p *Product) LimitBuy(ctx context.Context, clientOrderID string, size, price decimal.Decimal) (exchange.OrderID, error) {
	return p.limitOrder(ctx, "BUY", clientOrderID, size, price)
}

func (p *Product) LimitSell(ctx context.Context, clientOrderID string, size, price decimal.Decimal) (exchange.OrderID, error) {
	return p.limitOrder(ctx, "SELL", clientOrderID, size, price)
}

func (p *Product) checkLimits(size, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("price must be positive: %w", os.ErrInvalid)
	}
	if !size.IsPositive() {
		return fmt.Errorf("size must be positive: %w", os.ErrInvalid)
	}
	if minSize := p.productData.BaseMinSize; size.LessThan(minSize) {
		return fmt.Errorf("min size is %s: %w", minSize, os.ErrInvalid)
	}
	if maxSize := p.productData.BaseMaxSize; !maxSize.IsZero() && size.GreaterThan(maxSize) {
		return fmt.Errorf("max size is %s: %w", maxSize, os.ErrInvalid)
	}
	return nil
}

// limitOrder records a dry-run order in OPEN state. Dry-run orders are never
// filled by the offline exchange.
func (p *Product) limitOrder(ctx context.Context, side, clientOrderID string, size, price decimal.Decimal) (exchange.OrderID, error) {
	cid, err := uuid.Parse(clientOrderID)
	if err != nil {
		return "", fmt.Errorf("client order id %q is not a uuid: %w", clientOrderID, os.ErrInvalid)
	}
	if err := p.checkLimits(size, price); err != nil {
		return "", err
	}

	p.mu.Lock()
	// check if this is a retry request for the clientOrderID.
	if old, ok := p.clientOrderMap[cid]; ok {
		p.mu.Unlock()
		if old.Side != side {
			return "", fmt.Errorf("client order id %s is already used for a %s order: %w", cid, old.Side, os.ErrExist)
		}
		return old.ServerOrderID, nil
	}

	order, err := exchange.NewSimpleOrder(p.exchange.orderIDs.NextID().String(), cid, side)
	if err != nil {
		p.mu.Unlock()
		return "", err
	}
	order.CreateTime = exchange.RemoteTime{Time: p.exchange.opts.Now()}
	order.LimitSize = size
	order.LimitPrice = price
	order.Status = "OPEN"

	p.orderMap[order.ServerOrderID] = order
	p.clientOrderMap[cid] = order
	p.exchange.addOrder(order.ServerOrderID, p)
	update := *order
	p.mu.Unlock()

	p.prodOrderTopic.Send(&update)

	slog.InfoContext(ctx, "created a dry-run limit order", "product", p.ProductID(), "side", side, "size", size, "price", price, "order-id", order.ServerOrderID)
	return order.ServerOrderID, nil
}

func (p *Product) Get(ctx context.Context, id exchange.OrderID) (*exchange.SimpleOrder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, ok := p.orderMap[id]
	if !ok {
		return nil, fmt.Errorf("order %q not found: %w", id, os.ErrNotExist)
	}
	clone := *order
	return &clone, nil
}

// Cancel moves an open order to the CANCELLED state. Canceling a finished
// order is a no-op.
func (p *Product) Cancel(ctx context.Context, id exchange.OrderID) error {
	p.mu.Lock()
	order, ok := p.orderMap[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("order %q not found: %w", id, os.ErrNotExist)
	}
	if order.Done {
		p.mu.Unlock()
		return nil
	}
	order.Status = "CANCELLED"
	order.Done = true
	order.DoneReason = "CANCELLED"
	order.FinishTime = exchange.RemoteTime{Time: p.exchange.opts.Now()}
	update := *order
	p.mu.Unlock()

	p.prodOrderTopic.Send(&update)
	return nil
}

func (p *Product) gobOrder(id exchange.OrderID) *gobs.Order {
	p.mu.Lock()
	defer p.mu.Unlock()

	if order, ok := p.orderMap[id]; ok {
		return order.Gob()
	}
	return nil
}
