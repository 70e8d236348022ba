package repository

import (
	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

type PlanRepository interface {
	Find() (plan model.DailyPlan, found bool, err error)
	Save(plan model.DailyPlan) error
}

type planRepo struct {
	store Store
}

func NewPlanRepo(store Store) PlanRepository {
	return &planRepo{store}
}

func (r *planRepo) Find() (model.DailyPlan, bool, error) {
	var plan model.DailyPlan
	found, err := loadJSON(r.store, KeyDailyPlan, &plan)
	if err != nil || !found {
		return model.DailyPlan{}, false, err
	}
	if plan.ToBuy == nil {
		plan.ToBuy = []model.PlanItem{}
	}
	if plan.ToSell == nil {
		plan.ToSell = []model.PlanItem{}
	}
	return plan, true, nil
}

func (r *planRepo) Save(plan model.DailyPlan) error {
	if plan.ToBuy == nil {
		plan.ToBuy = []model.PlanItem{}
	}
	if plan.ToSell == nil {
		plan.ToSell = []model.PlanItem{}
	}
	return saveJSON(r.store, KeyDailyPlan, plan)
}
