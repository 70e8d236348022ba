package model

import (
	"slices"
	"sync"
)

// State is the whole in-memory model. One instance is created at startup and
// shared by the services; every operation holds the lock for its duration.
type State struct {
	sync.Mutex

	Products     []Product
	Plan         DailyPlan
	Transactions []Transaction // newest first

	// highest product id ever handed out or seen; never decreases
	productIDMark int64
}

func (s *State) ProductIndex(id int64) int {
	return slices.IndexFunc(s.Products, func(p Product) bool { return p.ID == id })
}

// NextProductID allocates a product id above every id in the catalog, every
// id referenced by the transaction log and every id allocated before, so a
// deleted product's id is never handed out again.
func (s *State) NextProductID() int64 {
	for _, p := range s.Products {
		s.productIDMark = max(s.productIDMark, p.ID)
	}
	for _, tx := range s.Transactions {
		s.productIDMark = max(s.productIDMark, tx.ProductID)
	}
	s.productIDMark++
	return s.productIDMark
}
