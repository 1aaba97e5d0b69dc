package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type TravelUseCase struct {
	repo       interfaces.Repository
	assessment *AssessmentUseCase
}

func NewTravelUseCase(repo interfaces.Repository, assessment *AssessmentUseCase) *TravelUseCase {
	return &TravelUseCase{
		repo:       repo,
		assessment: assessment,
	}
}

func (uc *TravelUseCase) validate(plan *model.TravelPlan) error {
	if plan.Destination == "" {
		return goerr.New("travel destination is required")
	}
	if plan.PersonnelID == "" {
		return goerr.New("travel personnel ID is required")
	}
	if !plan.ReturnDate.IsZero() && plan.ReturnDate.Before(plan.DepartureDate) {
		return goerr.New("return date is before departure",
			goerr.V("departure", plan.DepartureDate), goerr.V("return", plan.ReturnDate))
	}
	return nil
}

func (uc *TravelUseCase) Create(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error) {
	if err := uc.validate(plan); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Personnel().Get(ctx, plan.PersonnelID); err != nil {
		return nil, goerr.Wrap(err, "traveler not found", goerr.V("personnelID", plan.PersonnelID))
	}
	if plan.ID == "" {
		plan.ID = types.NewTravelPlanID()
	}

	assessment, err := uc.assessment.Score(ctx, types.EntityKindTravel, plan.ID.String(), plan.Snapshot())
	if err != nil {
		return nil, err
	}
	plan.Assessment = assessment

	created, err := uc.repo.Travel().Create(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create travel plan")
	}

	return created, nil
}

func (uc *TravelUseCase) Get(ctx context.Context, id types.TravelPlanID) (*model.TravelPlan, error) {
	return uc.repo.Travel().Get(ctx, id)
}

func (uc *TravelUseCase) List(ctx context.Context) ([]*model.TravelPlan, error) {
	return uc.repo.Travel().List(ctx)
}

// Update edits the itinerary without fetching a new raw score. Reductions
// applied afterwards keep computing against the stored original score; a
// legacy plan missing that field is normalized from its current overall here,
// on first edit, never again.
func (uc *TravelUseCase) Update(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error) {
	if err := uc.validate(plan); err != nil {
		return nil, err
	}

	existing, err := uc.repo.Travel().Get(ctx, plan.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get travel plan", goerr.V("id", plan.ID))
	}

	plan.Assessment = existing.Assessment
	plan.Mitigations = existing.Mitigations
	if plan.Assessment != nil {
		plan.Assessment.Normalize()
	}

	updated, err := uc.repo.Travel().Update(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update travel plan", goerr.V("id", plan.ID))
	}

	return updated, nil
}

func (uc *TravelUseCase) Delete(ctx context.Context, id types.TravelPlanID) error {
	if err := uc.repo.Travel().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete travel plan", goerr.V("id", id))
	}
	return nil
}
