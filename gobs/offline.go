// Copyright (c) 2025 BVK Chaitanya

package gobs

// OfflineSnapshot holds the static market data served by an offline
// exchange. Snapshots are saved and loaded with the valuestore package.
type OfflineSnapshot struct {
	ExchangeName  string
	StakeCurrency string

	Products []*Product

	// CandlesMap maps a product id to its candles in ascending start time
	// order.
	CandlesMap map[string]*Candles
}

// FindProduct returns the snapshot product with the given id or nil.
func (v *OfflineSnapshot) FindProduct(productID string) *Product {
	for _, p := range v.Products {
		if p.ProductID == productID {
			return p
		}
	}
	return nil
}
