package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type AssetUseCase struct {
	repo       interfaces.Repository
	assessment *AssessmentUseCase
}

func NewAssetUseCase(repo interfaces.Repository, assessment *AssessmentUseCase) *AssetUseCase {
	return &AssetUseCase{
		repo:       repo,
		assessment: assessment,
	}
}

// Create registers a new asset and scores it. Scoring failures fall back to
// the default assessment inside the engine, so creation always completes.
func (uc *AssetUseCase) Create(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	if asset.Name == "" {
		return nil, goerr.New("asset name is required")
	}
	if asset.ID == "" {
		asset.ID = types.NewAssetID()
	}

	assessment, err := uc.assessment.Score(ctx, types.EntityKindAsset, asset.ID.String(), asset.Snapshot())
	if err != nil {
		return nil, err
	}
	asset.Assessment = assessment

	created, err := uc.repo.Asset().Create(ctx, asset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create asset")
	}

	return created, nil
}

func (uc *AssetUseCase) Get(ctx context.Context, id types.AssetID) (*model.Asset, error) {
	return uc.repo.Asset().Get(ctx, id)
}

func (uc *AssetUseCase) List(ctx context.Context) ([]*model.Asset, error) {
	return uc.repo.Asset().List(ctx)
}

// Update edits the asset's descriptive fields. The stored assessment and
// mitigations are carried over unchanged: edits never fetch a new raw score,
// so the frozen original score stays the reference point for reductions.
func (uc *AssetUseCase) Update(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	if asset.Name == "" {
		return nil, goerr.New("asset name is required")
	}

	existing, err := uc.repo.Asset().Get(ctx, asset.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get asset", goerr.V("id", asset.ID))
	}

	asset.Assessment = existing.Assessment
	asset.Mitigations = existing.Mitigations
	if asset.Assessment != nil {
		asset.Assessment.Normalize()
	}

	updated, err := uc.repo.Asset().Update(ctx, asset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update asset", goerr.V("id", asset.ID))
	}

	return updated, nil
}

func (uc *AssetUseCase) Delete(ctx context.Context, id types.AssetID) error {
	if err := uc.repo.Asset().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete asset", goerr.V("id", id))
	}
	return nil
}
