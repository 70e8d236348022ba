package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
)

// LoadState reads the three records and fills in defaults for any that were
// never saved: the sample catalog, an empty plan dated today and an empty
// log. Plan items whose product no longer exists are pruned, and items or
// transactions written without an id get one.
//
// Failing to write back a default is logged, not returned; the loaded state
// is still usable.
func LoadState(pRepo repository.ProductRepository, planRepo repository.PlanRepository, tRepo repository.TransactionRepository, now Clock, log zerolog.Logger) (*model.State, error) {
	state := &model.State{}

	// 1. Catalog
	products, found, err := pRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if !found {
		products = model.SampleProducts()
		if err := pRepo.SaveAll(products); err != nil {
			log.Warn().Err(err).Msg("failed to save sample catalog")
		} else {
			log.Info().Int("products", len(products)).Msg("sample catalog created")
		}
	}
	state.Products = products

	// 2. Daily plan
	plan, found, err := planRepo.Find()
	if err != nil {
		return nil, err
	}
	planDirty := false
	if !found {
		plan = model.NewDailyPlan(now())
		planDirty = true
	}
	state.Plan = plan
	if reconcilePlan(state) {
		planDirty = true
	}
	if planDirty {
		if err := planRepo.Save(state.Plan); err != nil {
			log.Warn().Err(err).Msg("failed to save daily plan")
		}
	}

	// 3. Transaction log
	transactions, found, err := tRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if !found {
		transactions = []model.Transaction{}
	}
	state.Transactions = transactions
	if assignTransactionIDs(state.Transactions) {
		if err := tRepo.SaveAll(state.Transactions); err != nil {
			log.Warn().Err(err).Msg("failed to save transaction ids")
		}
	}

	log.Info().
		Int("products", len(state.Products)).
		Int("to_buy", len(state.Plan.ToBuy)).
		Int("to_sell", len(state.Plan.ToSell)).
		Int("transactions", len(state.Transactions)).
		Msg("state loaded")
	return state, nil
}

// reconcilePlan drops dangling plan items and ids missing ones. It reports
// whether anything changed.
func reconcilePlan(state *model.State) bool {
	changed := false
	for _, kind := range []model.PlanKind{model.PlanBuy, model.PlanSell} {
		list := state.Plan.List(kind)
		kept := (*list)[:0]
		for _, item := range *list {
			if state.ProductIndex(item.ProductID) < 0 {
				changed = true
				continue
			}
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
				changed = true
			}
			kept = append(kept, item)
		}
		*list = kept
	}
	return changed
}

func assignTransactionIDs(transactions []model.Transaction) bool {
	changed := false
	for i := range transactions {
		if transactions[i].ID == uuid.Nil {
			transactions[i].ID = uuid.New()
			changed = true
		}
	}
	return changed
}
