// Copyright (c) 2025 BVK Chaitanya

package exchange

import (
	"fmt"
	"os"
	"strings"

	"github.com/bvk/backtest/gobs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var lastUUID = uuid.Must(uuid.Parse("ffffffff-ffff-ffff-ffff-ffffffffffff"))

type SimpleOrder struct {
	ServerOrderID OrderID

	ClientUUID uuid.UUID

	Side string

	CreateTime RemoteTime
	FinishTime RemoteTime

	Fee         decimal.Decimal
	FilledSize  decimal.Decimal
	FilledPrice decimal.Decimal

	// LimitSize and LimitPrice hold the requested size and price. They are only
	// known for the orders created by this process.
	LimitSize  decimal.Decimal
	LimitPrice decimal.Decimal

	Status string

	// Done is true if order is complete. DoneReason below indicates if order has
	// failed or succeeded.
	Done bool

	// When Done is true, an empty DoneReason value indicates a successfull
	// execution of the order and a non-empty DoneReason indicates a failure with
	// the reason for the failure.
	DoneReason string
}

var _ OrderUpdate = &SimpleOrder{}
var _ OrderDetail = &SimpleOrder{}

func NewSimpleOrder(serverID string, clientID uuid.UUID, side string) (*SimpleOrder, error) {
	if len(serverID) == 0 {
		return nil, fmt.Errorf("NewSimpleOrder: server id cannot be empty")
	}
	if !strings.EqualFold(side, "buy") && !strings.EqualFold(side, "sell") {
		return nil, fmt.Errorf("NewSimpleOrder: side %q is invalid/unsupported", side)
	}
	if clientID == uuid.Nil {
		return nil, fmt.Errorf("NewSimpleOrder: zero uuid is not a valid client id")
	}
	if clientID == lastUUID {
		return nil, fmt.Errorf("NewSimpleOrder: all ones uuid is not a valid client id")
	}
	return &SimpleOrder{
		ServerOrderID: OrderID(serverID),
		ClientUUID:    clientID,
		Side:          strings.ToUpper(side),
	}, nil
}

func (v *SimpleOrder) ServerID() string {
	return string(v.ServerOrderID)
}

func (v *SimpleOrder) ClientID() uuid.UUID {
	return v.ClientUUID
}

func (v *SimpleOrder) OrderSide() string {
	return strings.ToUpper(v.Side)
}

func (v *SimpleOrder) OrderStatus() string {
	return v.Status
}

func (v *SimpleOrder) CreatedAt() RemoteTime {
	return RemoteTime{Time: v.CreateTime.Time}
}

func (v *SimpleOrder) UpdatedAt() RemoteTime {
	if v.FinishTime.Time.IsZero() {
		return v.CreatedAt()
	}
	return RemoteTime{Time: v.FinishTime.Time}
}

func (v *SimpleOrder) FinishedAt() RemoteTime {
	if v.IsDone() {
		return v.UpdatedAt()
	}
	return RemoteTime{}
}

func (v *SimpleOrder) ExecutedFee() decimal.Decimal {
	return v.Fee
}

func (v *SimpleOrder) ExecutedSize() decimal.Decimal {
	return v.FilledSize
}

func (v *SimpleOrder) ExecutedValue() decimal.Decimal {
	return v.FilledSize.Mul(v.FilledPrice)
}

func (v *SimpleOrder) IsDone() bool {
	return v.Done
}

// Gob returns the order in the storage format.
func (v *SimpleOrder) Gob() *gobs.Order {
	return &gobs.Order{
		ServerOrderID: v.ServerID(),
		ClientOrderID: v.ClientUUID.String(),
		CreateTime:    v.CreatedAt(),
		Side:          v.OrderSide(),
		Status:        v.Status,
		FilledFee:     v.Fee,
		FilledSize:    v.FilledSize,
		FilledPrice:   v.FilledPrice,
		Done:          v.Done,
		DoneReason:    v.DoneReason,
	}
}

// AddUpdate merges an order update into the order. Sizes and fees only grow
// and a finished order stays finished.
func (v *SimpleOrder) AddUpdate(update OrderUpdate) error {
	if v.ServerID() != update.ServerID() {
		return os.ErrInvalid
	}
	if v.ClientID() != update.ClientID() {
		return os.ErrInvalid
	}

	ctime := update.CreatedAt()
	if !v.CreateTime.Time.IsZero() && !ctime.Time.IsZero() {
		if !v.CreateTime.Time.Equal(ctime.Time) {
			return fmt.Errorf("create times do not match")
		}
	}
	if v.CreateTime.Time.IsZero() && !ctime.Time.IsZero() {
		v.CreateTime.Time = ctime.Time
	}

	if v.Fee.LessThan(update.ExecutedFee()) {
		v.Fee = update.ExecutedFee()
	}
	if !update.ExecutedSize().IsZero() {
		if v.FilledSize.LessThan(update.ExecutedSize()) {
			v.FilledSize = update.ExecutedSize()
			v.FilledPrice = update.ExecutedValue().Div(update.ExecutedSize())
		}
	}
	if !v.Done && update.IsDone() {
		v.Done = true
		v.Status = update.OrderStatus()
		v.FinishTime = update.UpdatedAt()
		if x, ok := update.(*SimpleOrder); ok {
			v.DoneReason = x.DoneReason
		} else {
			v.DoneReason = update.OrderStatus()
		}
	}
	return nil
}
