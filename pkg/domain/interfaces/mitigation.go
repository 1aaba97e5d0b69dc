package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// MitigationRepository stores user-created (custom) mitigation definitions.
// Seeded definitions come from configuration and are not persisted here.
type MitigationRepository interface {
	// Create persists a custom mitigation definition
	Create(ctx context.Context, def *model.MitigationDefinition) (*model.MitigationDefinition, error)

	// Get retrieves a definition by ID
	Get(ctx context.Context, id types.MitigationID) (*model.MitigationDefinition, error)

	// List retrieves all custom definitions
	List(ctx context.Context) ([]*model.MitigationDefinition, error)

	// Delete deletes a definition by ID
	Delete(ctx context.Context, id types.MitigationID) error
}
