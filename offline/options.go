// Copyright (c) 2025 BVK Chaitanya

package offline

import (
	"time"

	"github.com/bvkgo/kv"
	"github.com/google/uuid"
)

type Options struct {
	// Name is the exchange name reported by the offline exchange. Defaults to
	// the snapshot's exchange name or "offline".
	Name string

	// StakeCurrency is the quote currency used for stakes. It is also returned
	// as the proxy coin. Defaults to the snapshot's stake currency or "USD".
	StakeCurrency string

	// SnapshotPath, when non-empty, is a file saved with valuestore.SaveFileAs
	// holding a gobs.OfflineSnapshot.
	SnapshotPath string

	// Database and SnapshotName, when both are set, locate a snapshot saved
	// with valuestore.SaveDBAs. SnapshotPath takes precedence.
	Database     kv.Database
	SnapshotName string

	// Now returns the timestamps for dry-run orders. Backtests can replace it
	// with a simulated clock. Defaults to time.Now.
	Now func() time.Time

	// OrderIDSeed seeds the dry-run server order ids. Exchanges with the same
	// seed assign the same ids to orders in the same sequence. Defaults to a
	// random seed.
	OrderIDSeed string
}

func (v *Options) clone() *Options {
	c := *v
	return &c
}

func (v *Options) setDefaults() {
	if v.Now == nil {
		v.Now = time.Now
	}
	if len(v.OrderIDSeed) == 0 {
		v.OrderIDSeed = uuid.NewString()
	}
}
