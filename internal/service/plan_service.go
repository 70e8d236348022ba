package service

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/ws"
)

// PlanService owns today's buy and sell lists. Items are addressed by their
// id; the *At variants resolve a list position to an id first.
type PlanService interface {
	GetPlan() model.DailyPlan
	// AddToPlan reports added=false, with the existing item, when the
	// product is already on the list.
	AddToPlan(productID int64, kind model.PlanKind) (item model.PlanItem, added bool, err error)
	ItemAt(kind model.PlanKind, index int) (model.PlanItem, error)
	AdjustQuantity(kind model.PlanKind, itemID uuid.UUID, delta int) (model.PlanItem, error)
	AdjustQuantityAt(kind model.PlanKind, index int, delta int) (model.PlanItem, error)
	RemoveItem(kind model.PlanKind, itemID uuid.UUID) error
	RemoveItemAt(kind model.PlanKind, index int) error
	Summarize() model.PlanSummary
	SetDate(date string) error
	SetNotes(notes string) error
	SavePlan() error
}

type planService struct {
	state    *model.State
	planRepo repository.PlanRepository
	notifier Notifier
	log      zerolog.Logger
}

func NewPlanService(state *model.State, planRepo repository.PlanRepository, notifier Notifier, log zerolog.Logger) PlanService {
	return &planService{
		state:    state,
		planRepo: planRepo,
		notifier: notifier,
		log:      log.With().Str("component", "plan").Logger(),
	}
}

func planList(plan *model.DailyPlan, kind model.PlanKind) (*[]model.PlanItem, error) {
	l := plan.List(kind)
	if l == nil {
		return nil, model.NewValidationError("kind", "must be buy or sell")
	}
	return l, nil
}

// save persists the plan and publishes action. Callers hold the lock.
func (s *planService) save(action, message string, data interface{}) error {
	err := s.planRepo.Save(s.state.Plan)
	if err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("save daily plan")
	}
	s.notifier.Publish(ws.Event{Type: eventStockUpdate, Action: action, Message: eventMessage(message, err), Data: data})
	return err
}

func (s *planService) GetPlan() model.DailyPlan {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Plan.Clone()
}

func (s *planService) AddToPlan(productID int64, kind model.PlanKind) (model.PlanItem, bool, error) {
	s.state.Lock()
	defer s.state.Unlock()

	list, err := planList(&s.state.Plan, kind)
	if err != nil {
		return model.PlanItem{}, false, err
	}
	idx := s.state.ProductIndex(productID)
	if idx < 0 {
		return model.PlanItem{}, false, productNotFound(productID)
	}
	if existing := s.state.Plan.IndexOfProduct(kind, productID); existing >= 0 {
		return (*list)[existing], false, nil
	}

	product := s.state.Products[idx]
	price := product.BuyingPrice
	if kind == model.PlanSell {
		price = product.SellingPrice
	}
	item := model.PlanItem{
		ID:          uuid.New(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    1,
		Price:       price,
	}
	*list = append(*list, item)

	s.log.Info().Int64("product_id", productID).Str("kind", string(kind)).Msg("added to plan")
	return item, true, s.save("plan_item_added", listMessage(kind), item)
}

func listMessage(kind model.PlanKind) string {
	if kind == model.PlanBuy {
		return `Added to "Buy" list`
	}
	return `Added to "Sell" list`
}

func (s *planService) itemAt(kind model.PlanKind, index int) (model.PlanItem, error) {
	list, err := planList(&s.state.Plan, kind)
	if err != nil {
		return model.PlanItem{}, err
	}
	if index < 0 || index >= len(*list) {
		return model.PlanItem{}, &model.IndexError{List: kind, Index: index, Len: len(*list)}
	}
	return (*list)[index], nil
}

func (s *planService) ItemAt(kind model.PlanKind, index int) (model.PlanItem, error) {
	s.state.Lock()
	defer s.state.Unlock()
	return s.itemAt(kind, index)
}

func (s *planService) findItem(kind model.PlanKind, itemID uuid.UUID) (*[]model.PlanItem, int, error) {
	list, err := planList(&s.state.Plan, kind)
	if err != nil {
		return nil, -1, err
	}
	idx := s.state.Plan.IndexOfItem(kind, itemID)
	if idx < 0 {
		return nil, -1, &model.NotFoundError{Entity: "plan item", Key: itemID.String()}
	}
	return list, idx, nil
}

func (s *planService) adjust(kind model.PlanKind, itemID uuid.UUID, delta int) (model.PlanItem, error) {
	list, idx, err := s.findItem(kind, itemID)
	if err != nil {
		return model.PlanItem{}, err
	}
	item := &(*list)[idx]
	item.Quantity = adjustQuantity(item.Quantity, delta)
	return *item, s.save("plan_item_updated", fmt.Sprintf("%s × %d", item.ProductName, item.Quantity), *item)
}

// adjustQuantity adds delta, saturating at math.MaxInt and flooring at 1.
func adjustQuantity(qty, delta int) int {
	if delta > 0 && qty > math.MaxInt-delta {
		return math.MaxInt
	}
	if delta < 0 && qty < math.MinInt-delta {
		return 1
	}
	return max(1, qty+delta)
}

func (s *planService) AdjustQuantity(kind model.PlanKind, itemID uuid.UUID, delta int) (model.PlanItem, error) {
	s.state.Lock()
	defer s.state.Unlock()
	return s.adjust(kind, itemID, delta)
}

func (s *planService) AdjustQuantityAt(kind model.PlanKind, index int, delta int) (model.PlanItem, error) {
	s.state.Lock()
	defer s.state.Unlock()
	item, err := s.itemAt(kind, index)
	if err != nil {
		return model.PlanItem{}, err
	}
	return s.adjust(kind, item.ID, delta)
}

func (s *planService) remove(kind model.PlanKind, itemID uuid.UUID) error {
	list, idx, err := s.findItem(kind, itemID)
	if err != nil {
		return err
	}
	removed := (*list)[idx]
	*list = slices.Delete(*list, idx, idx+1)
	return s.save("plan_item_removed", fmt.Sprintf("Removed %s from plan", removed.ProductName), removed)
}

func (s *planService) RemoveItem(kind model.PlanKind, itemID uuid.UUID) error {
	s.state.Lock()
	defer s.state.Unlock()
	return s.remove(kind, itemID)
}

func (s *planService) RemoveItemAt(kind model.PlanKind, index int) error {
	s.state.Lock()
	defer s.state.Unlock()
	item, err := s.itemAt(kind, index)
	if err != nil {
		return err
	}
	return s.remove(kind, item.ID)
}

func (s *planService) Summarize() model.PlanSummary {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Plan.Summarize()
}

func (s *planService) SetDate(date string) error {
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		return model.NewValidationError("date", "must be a date like 2006-01-02")
	}

	s.state.Lock()
	defer s.state.Unlock()
	s.state.Plan.Date = date
	return s.save("plan_date_changed", "Planning date set to "+date, date)
}

func (s *planService) SetNotes(notes string) error {
	s.state.Lock()
	defer s.state.Unlock()
	s.state.Plan.Notes = notes
	return s.save("plan_notes_changed", "Notes saved", nil)
}

func (s *planService) SavePlan() error {
	s.state.Lock()
	defer s.state.Unlock()
	return s.save("plan_saved", "Daily plan saved successfully", nil)
}
