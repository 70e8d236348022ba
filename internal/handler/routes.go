package handler

import "github.com/gofiber/fiber/v2"

// SetupRoutes mounts the JSON API under /api/v1.
func SetupRoutes(app *fiber.App, inv *InventoryHandler, plan *PlanningHandler, dash *DashboardHandler) {
	api := app.Group("/api/v1")

	// Dashboard
	api.Get("/dashboard/stats", dash.GetDashboardStats)

	// Products
	api.Get("/products", inv.GetProducts)
	api.Get("/products/categories", inv.GetCategories)
	api.Get("/products/:id", inv.GetProduct)
	api.Post("/products", inv.CreateProduct)
	api.Put("/products/:id", inv.UpdateProduct)
	api.Delete("/products/:id", inv.DeleteProduct)

	// Daily plan
	api.Get("/plan", plan.GetPlan)
	api.Get("/plan/summary", plan.GetSummary)
	api.Put("/plan/date", plan.SetDate)
	api.Put("/plan/notes", plan.SetNotes)
	api.Post("/plan/save", plan.SavePlan)
	api.Post("/plan/:kind/items", plan.AddItem)
	api.Patch("/plan/:kind/items/:itemId", plan.AdjustItem)
	api.Delete("/plan/:kind/items/:itemId", plan.RemoveItem)
	api.Patch("/plan/:kind/positions/:index", plan.AdjustItemAt)
	api.Delete("/plan/:kind/positions/:index", plan.RemoveItemAt)

	// Transactions
	api.Get("/transactions", inv.GetTransactions)
	api.Get("/transactions/:id", inv.GetTransaction)
	api.Post("/transactions/buy", inv.RecordBuy)
	api.Post("/transactions/sale", inv.RecordSale)
}
