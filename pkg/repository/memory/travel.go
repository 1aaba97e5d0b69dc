package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type travelRepository struct {
	mu    sync.RWMutex
	plans map[types.TravelPlanID]*model.TravelPlan
}

func newTravelRepository() *travelRepository {
	return &travelRepository{
		plans: make(map[types.TravelPlanID]*model.TravelPlan),
	}
}

func (r *travelRepository) Create(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[plan.ID]; exists {
		return nil, goerr.New("travel plan already exists", goerr.V("id", plan.ID))
	}

	now := time.Now().UTC()
	created := cloneTravelPlan(plan)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.plans[created.ID] = created
	return cloneTravelPlan(created), nil
}

func (r *travelRepository) Get(ctx context.Context, id types.TravelPlanID) (*model.TravelPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, exists := r.plans[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "travel plan not found", goerr.V("id", id))
	}

	return cloneTravelPlan(plan), nil
}

func (r *travelRepository) List(ctx context.Context) ([]*model.TravelPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*model.TravelPlan, 0, len(r.plans))
	for _, plan := range r.plans {
		plans = append(plans, cloneTravelPlan(plan))
	}

	return plans, nil
}

func (r *travelRepository) Update(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.plans[plan.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "travel plan not found", goerr.V("id", plan.ID))
	}

	updated := cloneTravelPlan(plan)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.plans[updated.ID] = updated
	return cloneTravelPlan(updated), nil
}

func (r *travelRepository) Delete(ctx context.Context, id types.TravelPlanID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[id]; !exists {
		return goerr.Wrap(ErrNotFound, "travel plan not found", goerr.V("id", id))
	}

	delete(r.plans, id)
	return nil
}
