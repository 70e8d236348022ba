package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout of DailyPlan.Date.
const DateFormat = "2006-01-02"

// PlanKind names one of the two plan lists.
type PlanKind string

const (
	PlanBuy  PlanKind = "buy"
	PlanSell PlanKind = "sell"
)

func ParsePlanKind(s string) (PlanKind, error) {
	switch PlanKind(strings.ToLower(strings.TrimSpace(s))) {
	case PlanBuy:
		return PlanBuy, nil
	case PlanSell:
		return PlanSell, nil
	}
	return "", NewValidationError("kind", "must be buy or sell")
}

// PlanItem is a product scheduled for buying or selling today. ProductName
// and Price are copied when the item is added and do not follow later edits.
type PlanItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (i PlanItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type DailyPlan struct {
	Date   string     `json:"date"`
	ToBuy  []PlanItem `json:"toBuy"`
	ToSell []PlanItem `json:"toSell"`
	Notes  string     `json:"notes"`
}

// NewDailyPlan returns an empty plan dated on the calendar day of now.
func NewDailyPlan(now time.Time) DailyPlan {
	return DailyPlan{
		Date:   now.Format(DateFormat),
		ToBuy:  []PlanItem{},
		ToSell: []PlanItem{},
	}
}

// List returns a pointer to the list for kind, or nil for an unknown kind.
func (p *DailyPlan) List(kind PlanKind) *[]PlanItem {
	switch kind {
	case PlanBuy:
		return &p.ToBuy
	case PlanSell:
		return &p.ToSell
	}
	return nil
}

func (p DailyPlan) items(kind PlanKind) []PlanItem {
	if l := p.List(kind); l != nil {
		return *l
	}
	return nil
}

// Contains reports whether productID has an item in the kind list.
func (p DailyPlan) Contains(kind PlanKind, productID int64) bool {
	return p.IndexOfProduct(kind, productID) >= 0
}

func (p DailyPlan) IndexOfProduct(kind PlanKind, productID int64) int {
	return slices.IndexFunc(p.items(kind), func(i PlanItem) bool { return i.ProductID == productID })
}

func (p DailyPlan) IndexOfItem(kind PlanKind, id uuid.UUID) int {
	return slices.IndexFunc(p.items(kind), func(i PlanItem) bool { return i.ID == id })
}

// Clone copies both lists so the result can be handed out safely.
func (p DailyPlan) Clone() DailyPlan {
	p.ToBuy = slices.Clone(p.ToBuy)
	p.ToSell = slices.Clone(p.ToSell)
	return p
}

// PruneProduct drops every item referencing productID from both lists and
// returns how many were dropped.
func (p *DailyPlan) PruneProduct(productID int64) int {
	removed := 0
	for _, kind := range []PlanKind{PlanBuy, PlanSell} {
		l := p.List(kind)
		before := len(*l)
		*l = slices.DeleteFunc(*l, func(i PlanItem) bool { return i.ProductID == productID })
		removed += before - len(*l)
	}
	return removed
}

type PlanSummary struct {
	BuyQuantityTotal  int             `json:"buyQuantityTotal"`
	BuyCostTotal      decimal.Decimal `json:"buyCostTotal"`
	SellQuantityTotal int             `json:"sellQuantityTotal"`
	SellRevenueTotal  decimal.Decimal `json:"sellRevenueTotal"`
}

// Summarize totals quantities and quantity × price over each list.
func (p DailyPlan) Summarize() PlanSummary {
	s := PlanSummary{BuyCostTotal: decimal.Zero, SellRevenueTotal: decimal.Zero}
	for _, i := range p.ToBuy {
		s.BuyQuantityTotal += i.Quantity
		s.BuyCostTotal = s.BuyCostTotal.Add(i.Subtotal())
	}
	for _, i := range p.ToSell {
		s.SellQuantityTotal += i.Quantity
		s.SellRevenueTotal = s.SellRevenueTotal.Add(i.Subtotal())
	}
	return s
}
