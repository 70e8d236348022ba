// Package app wires configuration, storage and services together. Both the
// API server and the CLI start from Open.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/shravyakp25082007-tech/stockmate/internal/config"
	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/service"
	"github.com/shravyakp25082007-tech/stockmate/pkg/database"
)

type App struct {
	State *model.State

	ProductRepo     repository.ProductRepository
	PlanRepo        repository.PlanRepository
	TransactionRepo repository.TransactionRepository

	Inventory service.InventoryService
	Plan      service.PlanService
	Ledger    service.LedgerService
	Dashboard service.DashboardService

	db *gorm.DB
}

// OpenStore returns the store selected by cfg and, for SQL drivers, the
// database handle backing it.
func OpenStore(cfg config.Config, log zerolog.Logger) (repository.Store, *gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil, nil
	case config.DriverPostgres:
		db, err = database.ConnectPostgres(cfg.DatabaseURL, log)
	case config.DriverSQLite:
		db, err = database.ConnectSQLite(cfg.SQLitePath, log)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	store := repository.NewGormStore(db)
	if cfg.CacheTTL > 0 {
		store = repository.NewCachedStore(store, cfg.CacheTTL)
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")
	return store, db, nil
}

// Open builds the store, loads state and constructs every service.
func Open(cfg config.Config, notifier service.Notifier, log zerolog.Logger) (*App, error) {
	store, db, err := OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}
	a, err := New(store, notifier, time.Now, log)
	if err != nil {
		if db != nil {
			_ = database.Close(db)
		}
		return nil, err
	}
	a.db = db
	return a, nil
}

// New wires the services over an already opened store.
func New(store repository.Store, notifier service.Notifier, now service.Clock, log zerolog.Logger) (*App, error) {
	productRepo := repository.NewProductRepo(store)
	planRepo := repository.NewPlanRepo(store)
	txRepo := repository.NewTransactionRepo(store)

	state, err := service.LoadState(productRepo, planRepo, txRepo, now, log)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	return &App{
		State:           state,
		ProductRepo:     productRepo,
		PlanRepo:        planRepo,
		TransactionRepo: txRepo,
		Inventory:       service.NewInventoryService(state, productRepo, planRepo, notifier, log),
		Plan:            service.NewPlanService(state, planRepo, notifier, log),
		Ledger:          service.NewLedgerService(state, productRepo, txRepo, notifier, now, log),
		Dashboard:       service.NewDashboardService(state),
	}, nil
}

// Reset replaces all three records with the defaults of a fresh install.
func (a *App) Reset(now time.Time) error {
	a.State.Lock()
	defer a.State.Unlock()

	a.State.Products = model.SampleProducts()
	a.State.Plan = model.NewDailyPlan(now)
	a.State.Transactions = []model.Transaction{}

	if err := a.ProductRepo.SaveAll(a.State.Products); err != nil {
		return err
	}
	if err := a.PlanRepo.Save(a.State.Plan); err != nil {
		return err
	}
	return a.TransactionRepo.SaveAll(a.State.Transactions)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return database.Close(a.db)
}
