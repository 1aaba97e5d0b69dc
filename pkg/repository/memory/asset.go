package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type assetRepository struct {
	mu     sync.RWMutex
	assets map[types.AssetID]*model.Asset
}

func newAssetRepository() *assetRepository {
	return &assetRepository{
		assets: make(map[types.AssetID]*model.Asset),
	}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset.ID]; exists {
		return nil, goerr.New("asset already exists", goerr.V("id", asset.ID))
	}

	now := time.Now().UTC()
	created := cloneAsset(asset)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.assets[created.ID] = created
	return cloneAsset(created), nil
}

func (r *assetRepository) Get(ctx context.Context, id types.AssetID) (*model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
	}

	return cloneAsset(asset), nil
}

func (r *assetRepository) List(ctx context.Context) ([]*model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assets := make([]*model.Asset, 0, len(r.assets))
	for _, asset := range r.assets {
		assets = append(assets, cloneAsset(asset))
	}

	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assets[asset.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", asset.ID))
	}

	updated := cloneAsset(asset)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assets[updated.ID] = updated
	return cloneAsset(updated), nil
}

func (r *assetRepository) Delete(ctx context.Context, id types.AssetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[id]; !exists {
		return goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
	}

	delete(r.assets, id)
	return nil
}
