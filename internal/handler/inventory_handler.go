package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/service"
)

type InventoryHandler struct {
	service service.InventoryService
	ledger  service.LedgerService
}

func NewInventoryHandler(s service.InventoryService, l service.LedgerService) *InventoryHandler {
	return &InventoryHandler{service: s, ledger: l}
}

// productView adds the derived fields a product list shows.
type productView struct {
	model.Product
	Status        model.StockStatus `json:"status"`
	StatusLabel   string            `json:"statusLabel"`
	MarginPercent *decimal.Decimal  `json:"marginPercent,omitempty"`
}

func newProductView(p model.Product) productView {
	v := productView{Product: p, Status: p.Status(), StatusLabel: p.Status().Label()}
	if m, ok := p.MarginPercent(); ok {
		v.MarginPercent = &m
	}
	return v
}

func productViews(products []model.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = newProductView(p)
	}
	return out
}

// parseProductBody accepts typed JSON or a url-encoded form of strings.
func parseProductBody(c *fiber.Ctx) (model.ProductFields, error) {
	if c.Is("json") {
		var input model.ProductInput
		if err := c.BodyParser(&input); err != nil {
			return model.ProductFields{}, model.NewValidationError("body", "is not valid product JSON")
		}
		return input.Fields()
	}
	var form model.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return model.ProductFields{}, model.NewValidationError("body", "is not a valid product form")
	}
	return form.Parse()
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("id", "must be a positive integer")
	}
	return int64(id), nil
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	fields, err := parseProductBody(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.CreateProduct(fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product added successfully", "data": newProductView(product)})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	fields, err := parseProductBody(c)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.service.UpdateProduct(id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated successfully", "data": newProductView(updated)})
}

// DeleteProduct requires ?confirm=true; the confirmation dialog lives in the client.
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	if !c.QueryBool("confirm") {
		return c.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{
			"error": "Deleting a product cannot be undone; repeat with confirm=true",
		})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductView(product))
}

// GetProducts filters by search, category, status (out|low|good) and planning (buy|sell).
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	filter := model.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if s := c.Query("status"); s != "" {
		status, err := model.ParseStockStatus(s)
		if err != nil {
			return respondError(c, err)
		}
		filter.Status = status
	}
	if p := c.Query("planning"); p != "" {
		kind, err := model.ParsePlanKind(p)
		if err != nil {
			return respondError(c, err)
		}
		filter.Planning = kind
	}
	return c.JSON(productViews(h.service.FilterProducts(filter)))
}

func (h *InventoryHandler) GetCategories(c *fiber.Ctx) error {
	categories := h.service.Categories()
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(categories)
}

type tradeBody struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Supplier  string          `json:"supplier"`
	BuyerName string          `json:"buyerName"`
}

func (h *InventoryHandler) RecordBuy(c *fiber.Ctx) error {
	var body tradeBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	tx, err := h.ledger.RecordBuy(body.ProductID, body.Quantity, body.Price, body.Supplier)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

func (h *InventoryHandler) RecordSale(c *fiber.Ctx) error {
	var body tradeBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	tx, err := h.ledger.RecordSale(body.ProductID, body.Quantity, body.Price, body.BuyerName)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultHistoryLimit)
	transactions := []model.Transaction{}
	for tx := range h.ledger.Recent(limit) {
		transactions = append(transactions, tx)
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	tx, err := h.ledger.GetTransaction(txID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tx)
}
