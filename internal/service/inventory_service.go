package service

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/ws"
)

// InventoryService owns the product catalog.
type InventoryService interface {
	CreateProduct(fields model.ProductFields) (model.Product, error)
	UpdateProduct(id int64, fields model.ProductFields) (model.Product, error)
	DeleteProduct(id int64) error
	GetProduct(id int64) (model.Product, error)
	GetAllProducts() []model.Product
	FilterProducts(f model.ProductFilter) []model.Product
	Categories() []string
}

type inventoryService struct {
	state       *model.State
	productRepo repository.ProductRepository
	planRepo    repository.PlanRepository
	notifier    Notifier
	log         zerolog.Logger
}

func NewInventoryService(state *model.State, pRepo repository.ProductRepository, planRepo repository.PlanRepository, notifier Notifier, log zerolog.Logger) InventoryService {
	return &inventoryService{
		state:       state,
		productRepo: pRepo,
		planRepo:    planRepo,
		notifier:    notifier,
		log:         log.With().Str("component", "catalog").Logger(),
	}
}

func productNotFound(id int64) error {
	return &model.NotFoundError{Entity: "product", Key: strconv.FormatInt(id, 10)}
}

func (s *inventoryService) CreateProduct(fields model.ProductFields) (model.Product, error) {
	// 1. Validate before touching state
	fields = fields.Normalize()
	if err := validateStruct(fields); err != nil {
		return model.Product{}, err
	}

	s.state.Lock()
	defer s.state.Unlock()

	// 2. Assign id and append
	product := model.Product{ID: s.state.NextProductID(), ProductFields: fields}
	s.state.Products = append(s.state.Products, product)

	// 3. Persist; on failure the product stays in memory
	err := s.productRepo.SaveAll(s.state.Products)
	if err != nil {
		s.log.Error().Err(err).Int64("product_id", product.ID).Msg("save catalog after create")
	}

	s.log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	s.notifier.Publish(ws.Event{
		Type:    eventStockUpdate,
		Action:  "product_created",
		Message: eventMessage("Product added successfully", err),
		Data:    product,
	})
	return product, err
}

func (s *inventoryService) UpdateProduct(id int64, fields model.ProductFields) (model.Product, error) {
	fields = fields.Normalize()
	if err := validateStruct(fields); err != nil {
		return model.Product{}, err
	}

	s.state.Lock()
	defer s.state.Unlock()

	idx := s.state.ProductIndex(id)
	if idx < 0 {
		return model.Product{}, productNotFound(id)
	}

	// Track stock change for the broadcast
	oldStock := s.state.Products[idx].Quantity
	updated := model.Product{ID: id, ProductFields: fields}
	s.state.Products[idx] = updated

	err := s.productRepo.SaveAll(s.state.Products)
	if err != nil {
		s.log.Error().Err(err).Int64("product_id", id).Msg("save catalog after update")
	}

	s.log.Info().Int64("product_id", id).Int("old_stock", oldStock).Int("new_stock", updated.Quantity).Msg("product updated")
	s.notifier.Publish(ws.Event{
		Type:    eventStockUpdate,
		Action:  "product_updated",
		Message: eventMessage("Product updated successfully", err),
		Data: map[string]interface{}{
			"product":   updated,
			"old_stock": oldStock,
		},
	})
	return updated, err
}

// DeleteProduct removes the product and every plan item referencing it.
// Transactions keep their snapshot of the product.
func (s *inventoryService) DeleteProduct(id int64) error {
	s.state.Lock()
	defer s.state.Unlock()

	idx := s.state.ProductIndex(id)
	if idx < 0 {
		return productNotFound(id)
	}
	deleted := s.state.Products[idx]
	s.state.Products = slices.Delete(s.state.Products, idx, idx+1)
	pruned := s.state.Plan.PruneProduct(id)

	var errs []error
	if err := s.productRepo.SaveAll(s.state.Products); err != nil {
		errs = append(errs, err)
	}
	if pruned > 0 {
		if err := s.planRepo.Save(s.state.Plan); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		s.log.Error().Err(err).Int64("product_id", id).Msg("save after delete")
	}

	s.log.Info().Int64("product_id", id).Int("plan_items_pruned", pruned).Msg("product deleted")
	s.notifier.Publish(ws.Event{
		Type:    eventStockUpdate,
		Action:  "product_deleted",
		Message: eventMessage(fmt.Sprintf("Product '%s' deleted", deleted.Name), err),
		Data:    map[string]interface{}{"id": id, "plan_items_pruned": pruned},
	})
	return err
}

func (s *inventoryService) GetProduct(id int64) (model.Product, error) {
	s.state.Lock()
	defer s.state.Unlock()

	idx := s.state.ProductIndex(id)
	if idx < 0 {
		return model.Product{}, productNotFound(id)
	}
	return s.state.Products[idx], nil
}

func (s *inventoryService) GetAllProducts() []model.Product {
	s.state.Lock()
	defer s.state.Unlock()
	return slices.Clone(s.state.Products)
}

func (s *inventoryService) FilterProducts(f model.ProductFilter) []model.Product {
	s.state.Lock()
	defer s.state.Unlock()
	return model.FilterProducts(s.state.Products, s.state.Plan, f)
}

func (s *inventoryService) Categories() []string {
	s.state.Lock()
	defer s.state.Unlock()
	return model.Categories(s.state.Products)
}
