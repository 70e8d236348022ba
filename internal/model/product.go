package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored records carry prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// StockStatus classifies a product's quantity against its reorder threshold.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out"
	StatusLowStock   StockStatus = "low"
	StatusInStock    StockStatus = "good"
)

// Label returns the human readable form shown next to a product.
func (s StockStatus) Label() string {
	switch s {
	case StatusOutOfStock:
		return "Out of Stock"
	case StatusLowStock:
		return "Low Stock"
	case StatusInStock:
		return "In Stock"
	}
	return string(s)
}

// ParseStockStatus accepts the short codes used by filters. An empty string is not a status.
func ParseStockStatus(s string) (StockStatus, error) {
	switch StockStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOutOfStock:
		return StatusOutOfStock, nil
	case StatusLowStock:
		return StatusLowStock, nil
	case StatusInStock:
		return StatusInStock, nil
	}
	return "", NewValidationError("status", "must be one of out, low, good")
}

// ProductFields is everything about a product except its identity.
type ProductFields struct {
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	MinQuantity  int             `json:"minQuantity" validate:"gte=0"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice" validate:"gte=0"`
	SellingPrice decimal.Decimal `json:"sellingPrice" validate:"gte=0"`
}

// Normalize trims the free text fields.
func (f ProductFields) Normalize() ProductFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	return f
}

type Product struct {
	ID int64 `json:"id"`
	ProductFields
}

// Status is ClassifyStatus(p).
func (p Product) Status() StockStatus {
	return ClassifyStatus(p)
}

// ClassifyStatus reports OutOfStock at zero, LowStock up to and including
// MinQuantity, InStock above it.
func ClassifyStatus(p Product) StockStatus {
	switch {
	case p.Quantity <= 0:
		return StatusOutOfStock
	case p.Quantity <= p.MinQuantity:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StockValue is quantity × selling price.
func (p Product) StockValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// MarginPercent returns the markup over the buying price in percent.
// ok is false when the buying price is zero.
func (p Product) MarginPercent() (margin decimal.Decimal, ok bool) {
	if p.BuyingPrice.IsZero() {
		return decimal.Zero, false
	}
	return p.SellingPrice.Sub(p.BuyingPrice).Div(p.BuyingPrice).Mul(decimal.NewFromInt(100)).Round(1), true
}

// ProductFilter selects products for a view. Zero values match everything.
type ProductFilter struct {
	Search   string
	Category string
	Status   StockStatus
	Planning PlanKind
}

// FilterProducts returns the products matching every set criterion, in
// catalog order. The input slice is never modified.
func FilterProducts(products []Product, plan DailyPlan, f ProductFilter) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && ClassifyStatus(p) != f.Status {
			continue
		}
		if f.Planning != "" && !plan.Contains(f.Planning, p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct categories in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]bool, len(products))
	var out []string
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
