package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductForm is raw product input as typed into a form. Parse it before
// handing it to the catalog.
type ProductForm struct {
	Name         string `json:"name" form:"name"`
	Category     string `json:"category" form:"category"`
	Quantity     string `json:"quantity" form:"quantity"`
	MinQuantity  string `json:"minQuantity" form:"minQuantity"`
	BuyingPrice  string `json:"buyingPrice" form:"buyingPrice"`
	SellingPrice string `json:"sellingPrice" form:"sellingPrice"`
}

// Parse converts the form into typed fields. Every unparsable number is
// reported in the returned *ValidationError; nothing is coerced.
func (f ProductForm) Parse() (ProductFields, error) {
	var (
		fields ProductFields
		verr   ValidationError
		err    error
	)
	fields.Name = strings.TrimSpace(f.Name)
	fields.Category = strings.TrimSpace(f.Category)

	if fields.Quantity, err = parseInt(f.Quantity); err != nil {
		verr.Add("quantity", "must be a whole number")
	}
	if fields.MinQuantity, err = parseInt(f.MinQuantity); err != nil {
		verr.Add("minQuantity", "must be a whole number")
	}
	if fields.BuyingPrice, err = parseDecimal(f.BuyingPrice); err != nil {
		verr.Add("buyingPrice", "must be a number")
	}
	if fields.SellingPrice, err = parseDecimal(f.SellingPrice); err != nil {
		verr.Add("sellingPrice", "must be a number")
	}
	if verr.HasErrors() {
		return ProductFields{}, &verr
	}
	return fields, nil
}

// ProductInput is product JSON sent by an API client. The numeric fields are
// pointers so that an absent field is told apart from an explicit zero.
type ProductInput struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Quantity     *int             `json:"quantity"`
	MinQuantity  *int             `json:"minQuantity"`
	BuyingPrice  *decimal.Decimal `json:"buyingPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
}

// Fields reports every absent or null numeric field as required.
func (in ProductInput) Fields() (ProductFields, error) {
	var verr ValidationError
	fields := ProductFields{Name: in.Name, Category: in.Category}

	if in.Quantity == nil {
		verr.Add("quantity", "is required")
	} else {
		fields.Quantity = *in.Quantity
	}
	if in.MinQuantity == nil {
		verr.Add("minQuantity", "is required")
	} else {
		fields.MinQuantity = *in.MinQuantity
	}
	if in.BuyingPrice == nil {
		verr.Add("buyingPrice", "is required")
	} else {
		fields.BuyingPrice = *in.BuyingPrice
	}
	if in.SellingPrice == nil {
		verr.Add("sellingPrice", "is required")
	} else {
		fields.SellingPrice = *in.SellingPrice
	}
	if verr.HasErrors() {
		return ProductFields{}, &verr
	}
	return fields, nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
