// Copyright (c) 2025 BVK Chaitanya

package exchange

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bvk/backtest/gobs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewSimpleOrder(t *testing.T) {
	if _, err := NewSimpleOrder("", uuid.New(), "buy"); err == nil {
		t.Fatalf("empty server id: wanted non-nil error")
	}
	if _, err := NewSimpleOrder("1", uuid.New(), "hold"); err == nil {
		t.Fatalf("invalid side: wanted non-nil error")
	}
	if _, err := NewSimpleOrder("1", uuid.Nil, "buy"); err == nil {
		t.Fatalf("zero uuid: wanted non-nil error")
	}
	if _, err := NewSimpleOrder("1", lastUUID, "sell"); err == nil {
		t.Fatalf("all ones uuid: wanted non-nil error")
	}

	order, err := NewSimpleOrder("1", uuid.New(), "sell")
	if err != nil {
		t.Fatal(err)
	}
	if s := order.OrderSide(); s != "SELL" {
		t.Fatalf("want SELL, got %q", s)
	}
}

func TestSimpleOrderAddUpdate(t *testing.T) {
	cid := uuid.New()
	order, err := NewSimpleOrder("server-1", cid, "buy")
	if err != nil {
		t.Fatal(err)
	}

	other, _ := NewSimpleOrder("server-2", cid, "buy")
	if err := order.AddUpdate(other); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("wanted ErrInvalid, got %v", err)
	}

	now := time.Now()
	update, _ := NewSimpleOrder("server-1", cid, "buy")
	update.CreateTime = RemoteTime{Time: now}
	update.FinishTime = RemoteTime{Time: now.Add(time.Minute)}
	update.FilledSize = decimal.NewFromInt(2)
	update.FilledPrice = decimal.NewFromInt(10)
	update.Fee = decimal.NewFromFloat(0.1)
	update.Status = "FILLED"
	update.Done = true
	if err := order.AddUpdate(update); err != nil {
		t.Fatal(err)
	}
	if !order.IsDone() || order.OrderStatus() != "FILLED" {
		t.Fatalf("want done FILLED order, got %v/%s", order.IsDone(), order.OrderStatus())
	}
	if v := order.ExecutedValue(); !v.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("want executed value 20, got %s", v)
	}
	if !order.FinishedAt().Time.Equal(now.Add(time.Minute)) {
		t.Fatalf("want finish time %v, got %v", now.Add(time.Minute), order.FinishedAt().Time)
	}

	// Smaller sizes from stale updates are ignored.
	stale, _ := NewSimpleOrder("server-1", cid, "buy")
	stale.FilledSize = decimal.NewFromInt(1)
	stale.FilledPrice = decimal.NewFromInt(5)
	if err := order.AddUpdate(stale); err != nil {
		t.Fatal(err)
	}
	if !order.FilledSize.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("want filled size 2, got %s", order.FilledSize)
	}
}

func TestSimpleOrderGob(t *testing.T) {
	order, err := NewSimpleOrder("server-1", uuid.New(), "buy")
	if err != nil {
		t.Fatal(err)
	}
	order.CreateTime = RemoteTime{Time: time.Now()}
	order.LimitSize = decimal.NewFromInt(3)
	order.Status = "OPEN"

	clone, err := gobs.Clone(order)
	if err != nil {
		t.Fatal(err)
	}
	if clone.ServerOrderID != order.ServerOrderID || clone.ClientUUID != order.ClientUUID {
		t.Fatalf("want %v, got %v", order, clone)
	}
	if !clone.CreateTime.Equal(order.CreateTime.Time) {
		t.Fatalf("want create time %v, got %v", order.CreateTime, clone.CreateTime)
	}
	if !clone.LimitSize.Equal(order.LimitSize) {
		t.Fatalf("want limit size %s, got %s", order.LimitSize, clone.LimitSize)
	}

	g := order.Gob()
	if g.ClientOrderID != order.ClientUUID.String() || g.Side != "BUY" || g.Status != "OPEN" {
		t.Fatalf("unexpected gob form %#v", g)
	}
}
