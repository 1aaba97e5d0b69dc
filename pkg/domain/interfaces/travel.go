package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type TravelRepository interface {
	// Create persists a new travel plan. The ID must already be assigned.
	Create(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error)

	// Get retrieves a travel plan by ID
	Get(ctx context.Context, id types.TravelPlanID) (*model.TravelPlan, error)

	// List retrieves all travel plans
	List(ctx context.Context) ([]*model.TravelPlan, error)

	// Update updates an existing travel plan
	Update(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error)

	// Delete deletes a travel plan by ID
	Delete(ctx context.Context, id types.TravelPlanID) error
}
