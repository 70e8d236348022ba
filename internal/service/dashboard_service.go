package service

import (
	"github.com/shopspring/decimal"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

type DashboardService interface {
	GetDashboardStats() model.DashboardStats
}

type dashboardService struct {
	state *model.State
}

func NewDashboardService(state *model.State) DashboardService {
	return &dashboardService{state: state}
}

func (s *dashboardService) GetDashboardStats() model.DashboardStats {
	s.state.Lock()
	defer s.state.Unlock()
	return ComputeDashboard(s.state.Products, s.state.Plan, s.state.Transactions)
}

// ComputeDashboard derives the overview from current state. It is never stored.
func ComputeDashboard(products []model.Product, plan model.DailyPlan, transactions []model.Transaction) model.DashboardStats {
	stats := model.DashboardStats{
		TotalStockValue:  decimal.Zero,
		ItemCount:        len(products),
		BuyTodayCount:    len(plan.ToBuy),
		SellTodayCount:   len(plan.ToSell),
		TransactionCount: len(transactions),
		Alerts:           []model.StockAlert{},
	}

	for _, p := range products {
		stats.TotalStockValue = stats.TotalStockValue.Add(p.StockValue())

		switch model.ClassifyStatus(p) {
		case model.StatusOutOfStock:
			stats.Buckets.OutOfStock++
			stats.Alerts = append(stats.Alerts, model.StockAlert{
				Severity:        model.SeverityDanger,
				Title:           model.StatusOutOfStock.Label(),
				ProductID:       p.ID,
				ProductName:     p.Name,
				CurrentQuantity: p.Quantity,
			})
		case model.StatusLowStock:
			stats.Buckets.LowStock++
			stats.Alerts = append(stats.Alerts, model.StockAlert{
				Severity:        model.SeverityWarning,
				Title:           model.StatusLowStock.Label(),
				ProductID:       p.ID,
				ProductName:     p.Name,
				CurrentQuantity: p.Quantity,
			})
		default:
			stats.Buckets.InStock++
		}
	}
	stats.LowStockCount = stats.Buckets.LowStock

	total := float64(max(stats.Buckets.Total(), 1))
	stats.Proportions = model.StockProportions{
		InStock:    float64(stats.Buckets.InStock) / total,
		LowStock:   float64(stats.Buckets.LowStock) / total,
		OutOfStock: float64(stats.Buckets.OutOfStock) / total,
	}
	return stats
}
