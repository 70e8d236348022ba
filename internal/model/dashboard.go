package model

import "github.com/shopspring/decimal"

type StockBuckets struct {
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

func (b StockBuckets) Total() int {
	return b.InStock + b.LowStock + b.OutOfStock
}

// StockProportions are bucket shares in [0,1] for the stock bar chart.
type StockProportions struct {
	InStock    float64 `json:"inStock"`
	LowStock   float64 `json:"lowStock"`
	OutOfStock float64 `json:"outOfStock"`
}

type AlertSeverity string

const (
	SeverityDanger  AlertSeverity = "danger"
	SeverityWarning AlertSeverity = "warning"
)

type StockAlert struct {
	Severity        AlertSeverity `json:"severity"`
	Title           string        `json:"title"`
	ProductID       int64         `json:"productId"`
	ProductName     string        `json:"productName"`
	CurrentQuantity int           `json:"currentQuantity"`
}

type DashboardStats struct {
	TotalStockValue  decimal.Decimal  `json:"totalStockValue"`
	ItemCount        int              `json:"itemCount"`
	BuyTodayCount    int              `json:"buyTodayCount"`
	SellTodayCount   int              `json:"sellTodayCount"`
	LowStockCount    int              `json:"lowStockCount"`
	TransactionCount int              `json:"transactionCount"`
	Buckets          StockBuckets     `json:"buckets"`
	Proportions      StockProportions `json:"proportions"`
	Alerts           []StockAlert     `json:"alerts"`
}
