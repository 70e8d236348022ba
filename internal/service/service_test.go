package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/ws"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var errDiskFull = errors.New("disk full")

type recordingNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (n *recordingNotifier) Publish(e ws.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Action
	}
	return out
}

// switchStore is a memory store whose saves can be made to fail.
type switchStore struct {
	repository.Store
	mu       sync.Mutex
	failSave bool
}

func (s *switchStore) Save(key string, value []byte) error {
	s.mu.Lock()
	fail := s.failSave
	s.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return s.Store.Save(key, value)
}

func (s *switchStore) setFailing(fail bool) {
	s.mu.Lock()
	s.failSave = fail
	s.mu.Unlock()
}

type fixture struct {
	store     *switchStore
	notifier  *recordingNotifier
	state     *model.State
	products  repository.ProductRepository
	plans     repository.PlanRepository
	txs       repository.TransactionRepository
	inventory InventoryService
	plan      PlanService
	ledger    LedgerService
	dashboard DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:    &switchStore{Store: repository.NewMemoryStore()},
		notifier: &recordingNotifier{},
	}
	f.products = repository.NewProductRepo(f.store)
	f.plans = repository.NewPlanRepo(f.store)
	f.txs = repository.NewTransactionRepo(f.store)

	log := zerolog.Nop()
	state, err := LoadState(f.products, f.plans, f.txs, fixedClock, log)
	require.NoError(t, err)
	f.state = state

	f.inventory = NewInventoryService(state, f.products, f.plans, f.notifier, log)
	f.plan = NewPlanService(state, f.plans, f.notifier, log)
	f.ledger = NewLedgerService(state, f.products, f.txs, f.notifier, fixedClock, log)
	f.dashboard = NewDashboardService(state)
	return f
}

// stored reads the persisted records back through fresh repositories.
func (f *fixture) stored(t *testing.T) ([]model.Product, model.DailyPlan, []model.Transaction) {
	t.Helper()
	products, _, err := f.products.FindAll()
	require.NoError(t, err)
	plan, _, err := f.plans.Find()
	require.NoError(t, err)
	txs, _, err := f.txs.FindAll()
	require.NoError(t, err)
	return products, plan, txs
}

func (f *fixture) product(t *testing.T, id int64) model.Product {
	t.Helper()
	p, err := f.inventory.GetProduct(id)
	require.NoError(t, err)
	return p
}
