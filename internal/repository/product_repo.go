package repository

import (
	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

type ProductRepository interface {
	// FindAll returns found=false when no catalog has ever been saved.
	FindAll() (products []model.Product, found bool, err error)
	SaveAll(products []model.Product) error
}

type productRepo struct {
	store Store
}

func NewProductRepo(store Store) ProductRepository {
	return &productRepo{store}
}

func (r *productRepo) FindAll() ([]model.Product, bool, error) {
	var products []model.Product
	found, err := loadJSON(r.store, KeyCatalog, &products)
	if err != nil || !found {
		return nil, false, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, true, nil
}

func (r *productRepo) SaveAll(products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	return saveJSON(r.store, KeyCatalog, products)
}
