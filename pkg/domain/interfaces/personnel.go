package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type PersonnelRepository interface {
	// Create persists a new personnel record. The ID must already be assigned.
	Create(ctx context.Context, person *model.Personnel) (*model.Personnel, error)

	// Get retrieves a personnel record by ID
	Get(ctx context.Context, id types.PersonnelID) (*model.Personnel, error)

	// List retrieves all personnel records
	List(ctx context.Context) ([]*model.Personnel, error)

	// Update updates an existing personnel record
	Update(ctx context.Context, person *model.Personnel) (*model.Personnel, error)

	// Delete deletes a personnel record by ID
	Delete(ctx context.Context, id types.PersonnelID) error
}
