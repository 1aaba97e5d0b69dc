package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/service/catalog"
	"github.com/secops-lab/panoptes/pkg/utils/logging"
	"golang.org/x/sync/singleflight"
)

// AssessmentUseCase is the one scoring and mitigation engine shared by the
// asset, personnel and travel flows. Per-entity state is independent: the
// single-flight guard only prevents double submission of the same draft.
type AssessmentUseCase struct {
	repo    interfaces.Repository
	scorer  interfaces.Scorer
	catalog *catalog.Service

	scoring singleflight.Group
}

func NewAssessmentUseCase(repo interfaces.Repository, scorer interfaces.Scorer, catalogSvc *catalog.Service) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:    repo,
		scorer:  scorer,
		catalog: catalogSvc,
	}
}

// Score requests a risk assessment for a draft entity. Failures never block:
// when the scorer is missing, errors out, or returns an out-of-range result,
// the documented default assessment is substituted and the failure is logged.
// Concurrent calls for the same draft share one scorer round trip. If the
// caller's context is cancelled while the call is in flight, the result is
// discarded and ctx.Err() returned so it cannot be applied to a closed draft.
func (uc *AssessmentUseCase) Score(ctx context.Context, kind types.EntityKind, draftID string, snapshot *model.EntitySnapshot) (*model.RiskAssessment, error) {
	now := time.Now().UTC()

	if uc.scorer == nil {
		return model.DefaultAssessment(now), nil
	}

	key := kind.String() + "/" + draftID
	ch := uc.scoring.DoChan(key, func() (any, error) {
		// Detached from the caller so one cancelled submitter does not
		// poison the shared result.
		return uc.scorer.ScoreRisk(context.WithoutCancel(ctx), kind, snapshot)
	})

	select {
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "scoring cancelled", goerr.V("kind", kind), goerr.V("draftID", draftID))
	case res := <-ch:
		if res.Err != nil {
			logging.From(ctx).Warn("risk scoring failed, using default assessment",
				slog.Any("kind", kind),
				slog.String("draftID", draftID),
				slog.Any("error", res.Err))
			return model.DefaultAssessment(now), nil
		}

		raw := res.Val.(*model.RawAssessment)
		assessment, err := model.NewRiskAssessment(raw, now)
		if err != nil {
			logging.From(ctx).Warn("scorer returned invalid assessment, using default",
				slog.Any("kind", kind),
				slog.String("draftID", draftID),
				slog.Any("error", err))
			return model.DefaultAssessment(now), nil
		}
		return assessment, nil
	}
}

// AddMitigation applies a catalog definition to the entity's ledger and
// recomputes the assessment. Duplicate application fails with
// model.ErrDuplicateMitigation.
func (uc *AssessmentUseCase) AddMitigation(ctx context.Context, kind types.EntityKind, entityID string, mitigationID types.MitigationID, actor string) (*model.RiskAssessment, error) {
	if uc.catalog == nil {
		return nil, goerr.New("mitigation catalog is not configured")
	}

	def, err := uc.catalog.Get(ctx, mitigationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up mitigation definition", goerr.V("id", mitigationID))
	}

	return uc.mutateLedger(ctx, kind, entityID, func(ledger *model.MitigationLedger, now time.Time) error {
		return ledger.Add(def, actor, now)
	})
}

// RemoveMitigation removes a mitigation from the entity's ledger. Removing an
// absent mitigation is a no-op, not an error.
func (uc *AssessmentUseCase) RemoveMitigation(ctx context.Context, kind types.EntityKind, entityID string, mitigationID types.MitigationID) (*model.RiskAssessment, error) {
	return uc.mutateLedger(ctx, kind, entityID, func(ledger *model.MitigationLedger, now time.Time) error {
		ledger.Remove(mitigationID)
		return nil
	})
}

// UpdateMitigation edits the reduction or notes of an applied mitigation.
// AppliedBy and AppliedAt are preserved.
func (uc *AssessmentUseCase) UpdateMitigation(ctx context.Context, kind types.EntityKind, entityID string, mitigationID types.MitigationID, patch model.MitigationPatch) (*model.RiskAssessment, error) {
	return uc.mutateLedger(ctx, kind, entityID, func(ledger *model.MitigationLedger, now time.Time) error {
		return ledger.Update(mitigationID, patch)
	})
}

// mutateLedger loads the entity, applies the ledger mutation, recomputes the
// assessment from the frozen original score and persists the result. A legacy
// assessment missing its original score is normalized from the current overall
// before the first mutation, so reductions never compound against an
// already-reduced number.
func (uc *AssessmentUseCase) mutateLedger(ctx context.Context, kind types.EntityKind, entityID string, fn func(ledger *model.MitigationLedger, now time.Time) error) (*model.RiskAssessment, error) {
	now := time.Now().UTC()

	switch kind {
	case types.EntityKindAsset:
		asset, err := uc.repo.Asset().Get(ctx, types.AssetID(entityID))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get asset", goerr.V("id", entityID))
		}
		assessment, ledger, err := applyLedgerMutation(asset.Assessment, asset.Mitigations, fn, now)
		if err != nil {
			return nil, err
		}
		asset.Assessment = assessment
		asset.Mitigations = ledger.Entries()
		if _, err := uc.repo.Asset().Update(ctx, asset); err != nil {
			return nil, goerr.Wrap(err, "failed to persist asset assessment", goerr.V("id", entityID))
		}
		return assessment, nil

	case types.EntityKindPersonnel:
		person, err := uc.repo.Personnel().Get(ctx, types.PersonnelID(entityID))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get personnel", goerr.V("id", entityID))
		}
		assessment, ledger, err := applyLedgerMutation(person.Assessment, person.Mitigations, fn, now)
		if err != nil {
			return nil, err
		}
		person.Assessment = assessment
		person.Mitigations = ledger.Entries()
		if _, err := uc.repo.Personnel().Update(ctx, person); err != nil {
			return nil, goerr.Wrap(err, "failed to persist personnel assessment", goerr.V("id", entityID))
		}
		return assessment, nil

	case types.EntityKindTravel:
		plan, err := uc.repo.Travel().Get(ctx, types.TravelPlanID(entityID))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get travel plan", goerr.V("id", entityID))
		}
		assessment, ledger, err := applyLedgerMutation(plan.Assessment, plan.Mitigations, fn, now)
		if err != nil {
			return nil, err
		}
		plan.Assessment = assessment
		plan.Mitigations = ledger.Entries()
		if _, err := uc.repo.Travel().Update(ctx, plan); err != nil {
			return nil, goerr.Wrap(err, "failed to persist travel plan assessment", goerr.V("id", entityID))
		}
		return assessment, nil

	default:
		return nil, goerr.Wrap(ErrUnsupportedEntityKind, "cannot mutate mitigations", goerr.V("kind", kind))
	}
}

func applyLedgerMutation(assessment *model.RiskAssessment, entries []model.AppliedMitigation, fn func(ledger *model.MitigationLedger, now time.Time) error, now time.Time) (*model.RiskAssessment, *model.MitigationLedger, error) {
	if assessment == nil {
		assessment = model.DefaultAssessment(now)
	}
	assessment.Normalize()

	ledger := model.NewMitigationLedger(entries)
	if err := fn(ledger, now); err != nil {
		return nil, nil, err
	}

	assessment.RecomputeFromLedger(ledger, now)
	return assessment, ledger, nil
}
