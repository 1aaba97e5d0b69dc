package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
)

// RiskUseCase manages the manually curated part of the risk register.
// AI-detected entries enter through DetectionUseCase.Confirm instead.
type RiskUseCase struct {
	repo interfaces.Repository
}

func NewRiskUseCase(repo interfaces.Repository) *RiskUseCase {
	return &RiskUseCase{
		repo: repo,
	}
}

func (uc *RiskUseCase) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	if risk.Title == "" {
		return nil, goerr.New("risk title is required")
	}

	// Manual entries never carry detection metadata
	risk.IsAIGenerated = false
	risk.AIConfidence = 0
	risk.AIDetectionDate = nil

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return created, nil
}

func (uc *RiskUseCase) Get(ctx context.Context, id int64) (*model.Risk, error) {
	return uc.repo.Risk().Get(ctx, id)
}

func (uc *RiskUseCase) List(ctx context.Context) ([]*model.Risk, error) {
	return uc.repo.Risk().List(ctx)
}

// Update edits the register entry. Detection provenance fields are read-only:
// whatever the caller sends, the stored values win.
func (uc *RiskUseCase) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	if risk.Title == "" {
		return nil, goerr.New("risk title is required")
	}

	existing, err := uc.repo.Risk().Get(ctx, risk.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", risk.ID))
	}

	risk.IsAIGenerated = existing.IsAIGenerated
	risk.AIConfidence = existing.AIConfidence
	risk.AIDetectionDate = existing.AIDetectionDate
	risk.SourceAssetID = existing.SourceAssetID
	risk.SourcePersonnelID = existing.SourcePersonnelID
	risk.SourceIncidentID = existing.SourceIncidentID
	risk.SourceTravelPlanID = existing.SourceTravelPlanID

	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return updated, nil
}

func (uc *RiskUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}
	return nil
}
