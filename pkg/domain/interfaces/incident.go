package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type IncidentRepository interface {
	// Create persists a new incident. The ID must already be assigned.
	Create(ctx context.Context, incident *model.Incident) (*model.Incident, error)

	// Get retrieves an incident by ID
	Get(ctx context.Context, id types.IncidentID) (*model.Incident, error)

	// List retrieves all incidents
	List(ctx context.Context) ([]*model.Incident, error)

	// Update updates an existing incident
	Update(ctx context.Context, incident *model.Incident) (*model.Incident, error)

	// Delete deletes an incident by ID
	Delete(ctx context.Context, id types.IncidentID) error
}
