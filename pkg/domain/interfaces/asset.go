package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type AssetRepository interface {
	// Create persists a new asset. The ID must already be assigned.
	Create(ctx context.Context, asset *model.Asset) (*model.Asset, error)

	// Get retrieves an asset by ID
	Get(ctx context.Context, id types.AssetID) (*model.Asset, error)

	// List retrieves all assets
	List(ctx context.Context) ([]*model.Asset, error)

	// Update updates an existing asset
	Update(ctx context.Context, asset *model.Asset) (*model.Asset, error)

	// Delete deletes an asset by ID
	Delete(ctx context.Context, id types.AssetID) error
}
