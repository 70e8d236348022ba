package model

import "github.com/shopspring/decimal"

// SampleProducts is the catalog a fresh installation starts with.
func SampleProducts() []Product {
	p := func(id int64, name, category string, qty, min int, buy, sell int64) Product {
		return Product{ID: id, ProductFields: ProductFields{
			Name:         name,
			Category:     category,
			Quantity:     qty,
			MinQuantity:  min,
			BuyingPrice:  decimal.NewFromInt(buy),
			SellingPrice: decimal.NewFromInt(sell),
		}}
	}
	return []Product{
		p(1, "Wheat Flour (10kg)", "Groceries", 15, 5, 450, 550),
		p(2, "Rice (5kg)", "Groceries", 8, 4, 400, 500),
		p(3, "Sugar (2kg)", "Groceries", 2, 3, 200, 280),
		p(4, "Salt (1kg)", "Groceries", 25, 10, 50, 80),
		p(5, "Cooking Oil (5L)", "Groceries", 0, 3, 500, 650),
		p(6, "Notebook (100 pages)", "Books", 30, 15, 40, 60),
		p(7, "LED Bulb (9W)", "Electronics", 12, 5, 150, 250),
		p(8, "Aspirin Tablets (100)", "Medicines", 5, 2, 120, 200),
	}
}
