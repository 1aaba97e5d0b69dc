package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type PersonnelUseCase struct {
	repo       interfaces.Repository
	assessment *AssessmentUseCase
}

func NewPersonnelUseCase(repo interfaces.Repository, assessment *AssessmentUseCase) *PersonnelUseCase {
	return &PersonnelUseCase{
		repo:       repo,
		assessment: assessment,
	}
}

func (uc *PersonnelUseCase) Create(ctx context.Context, person *model.Personnel) (*model.Personnel, error) {
	if person.Name == "" {
		return nil, goerr.New("personnel name is required")
	}
	if person.ID == "" {
		person.ID = types.NewPersonnelID()
	}

	assessment, err := uc.assessment.Score(ctx, types.EntityKindPersonnel, person.ID.String(), person.Snapshot())
	if err != nil {
		return nil, err
	}
	person.Assessment = assessment

	created, err := uc.repo.Personnel().Create(ctx, person)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create personnel")
	}

	return created, nil
}

func (uc *PersonnelUseCase) Get(ctx context.Context, id types.PersonnelID) (*model.Personnel, error) {
	return uc.repo.Personnel().Get(ctx, id)
}

func (uc *PersonnelUseCase) List(ctx context.Context) ([]*model.Personnel, error) {
	return uc.repo.Personnel().List(ctx)
}

// Update edits descriptive fields only; assessment and mitigations carry over
func (uc *PersonnelUseCase) Update(ctx context.Context, person *model.Personnel) (*model.Personnel, error) {
	if person.Name == "" {
		return nil, goerr.New("personnel name is required")
	}

	existing, err := uc.repo.Personnel().Get(ctx, person.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get personnel", goerr.V("id", person.ID))
	}

	person.Assessment = existing.Assessment
	person.Mitigations = existing.Mitigations
	if person.Assessment != nil {
		person.Assessment.Normalize()
	}

	updated, err := uc.repo.Personnel().Update(ctx, person)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update personnel", goerr.V("id", person.ID))
	}

	return updated, nil
}

func (uc *PersonnelUseCase) Delete(ctx context.Context, id types.PersonnelID) error {
	if err := uc.repo.Personnel().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete personnel", goerr.V("id", id))
	}
	return nil
}
