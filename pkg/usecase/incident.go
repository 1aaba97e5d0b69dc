package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type IncidentUseCase struct {
	repo interfaces.Repository
}

func NewIncidentUseCase(repo interfaces.Repository) *IncidentUseCase {
	return &IncidentUseCase{
		repo: repo,
	}
}

func (uc *IncidentUseCase) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	if incident.Title == "" {
		return nil, goerr.New("incident title is required")
	}
	if incident.ID == "" {
		incident.ID = types.NewIncidentID()
	}

	created, err := uc.repo.Incident().Create(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}

	return created, nil
}

func (uc *IncidentUseCase) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	return uc.repo.Incident().Get(ctx, id)
}

func (uc *IncidentUseCase) List(ctx context.Context) ([]*model.Incident, error) {
	return uc.repo.Incident().List(ctx)
}

func (uc *IncidentUseCase) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	if incident.Title == "" {
		return nil, goerr.New("incident title is required")
	}

	updated, err := uc.repo.Incident().Update(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V("id", incident.ID))
	}

	return updated, nil
}

func (uc *IncidentUseCase) Delete(ctx context.Context, id types.IncidentID) error {
	if err := uc.repo.Incident().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}
	return nil
}
