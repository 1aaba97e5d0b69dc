package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/utils/async"
	"github.com/secops-lab/panoptes/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DetectionUseCase runs the AI risk-detection pipeline. Detection never writes
// to the register directly: candidates are staged in memory and become Risk
// records only through an explicit Confirm call. Each Detect run replaces the
// previously staged batch.
type DetectionUseCase struct {
	repo     interfaces.Repository
	scorer   interfaces.Scorer
	archiver interfaces.Archiver
	notifier interfaces.Notifier

	orgID   string
	enabled bool

	mu        sync.Mutex
	stagingID types.StagingID
	staged    []*model.DetectedRisk
}

type DetectionOption func(*DetectionUseCase)

func WithDetectionCapability(enabled bool) DetectionOption {
	return func(uc *DetectionUseCase) {
		uc.enabled = enabled
	}
}

func WithDetectionArchiver(archiver interfaces.Archiver) DetectionOption {
	return func(uc *DetectionUseCase) {
		uc.archiver = archiver
	}
}

func WithDetectionNotifier(notifier interfaces.Notifier) DetectionOption {
	return func(uc *DetectionUseCase) {
		uc.notifier = notifier
	}
}

func NewDetectionUseCase(repo interfaces.Repository, scorer interfaces.Scorer, orgID string, opts ...DetectionOption) *DetectionUseCase {
	uc := &DetectionUseCase{
		repo:   repo,
		scorer: scorer,
		orgID:  orgID,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// StagedBatch is a detection result awaiting human confirmation
type StagedBatch struct {
	StagingID  types.StagingID
	Candidates []*model.DetectedRisk
}

// ConfirmResult reports the outcome of a confirmation request. Failures are
// per-candidate: one bad candidate never rolls back the others.
type ConfirmResult struct {
	Confirmed []*model.Risk
	Failed    []ConfirmFailure
}

type ConfirmFailure struct {
	CandidateID string
	Err         error
}

// Detect gathers the organization snapshot, archives it for audit, asks the
// scorer for candidate risks and stages them under a fresh staging ID. The
// previous staged batch, confirmed or not, is discarded.
func (uc *DetectionUseCase) Detect(ctx context.Context) (*StagedBatch, error) {
	if !uc.enabled {
		return nil, goerr.Wrap(ErrDetectionDisabled, "detection not enabled for organization", goerr.V("orgID", uc.orgID))
	}
	if uc.scorer == nil {
		return nil, goerr.New("scorer is not configured")
	}

	snapshot, err := uc.gatherSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if uc.archiver != nil {
		// Best effort: a failed audit write must not block detection
		if path, err := uc.archiver.ArchiveSnapshot(ctx, uc.orgID, snapshot); err != nil {
			logging.From(ctx).Warn("failed to archive detection snapshot",
				slog.String("orgID", uc.orgID), slog.Any("error", err))
		} else {
			logging.From(ctx).Info("archived detection snapshot", slog.String("path", path))
		}
	}

	candidates, err := uc.scorer.DetectRisks(ctx, uc.orgID, snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "risk detection failed", goerr.V("orgID", uc.orgID))
	}

	batch := &StagedBatch{
		StagingID:  types.NewStagingID(),
		Candidates: candidates,
	}

	uc.mu.Lock()
	uc.stagingID = batch.StagingID
	uc.staged = candidates
	uc.mu.Unlock()

	logging.From(ctx).Info("staged detection candidates",
		slog.String("stagingID", batch.StagingID.String()),
		slog.Int("count", len(candidates)))

	return batch, nil
}

// Staged returns the currently staged batch, or nil when nothing is staged
func (uc *DetectionUseCase) Staged(ctx context.Context) *StagedBatch {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.stagingID == "" {
		return nil
	}
	candidates := make([]*model.DetectedRisk, len(uc.staged))
	copy(candidates, uc.staged)
	return &StagedBatch{
		StagingID:  uc.stagingID,
		Candidates: candidates,
	}
}

// Confirm turns selected staged candidates into persisted register entries.
// Only candidates from the current staged batch can be confirmed; an empty
// selection is a valid zero-count request. Confirmed candidates leave the
// staged batch so a retried request cannot double-insert them.
func (uc *DetectionUseCase) Confirm(ctx context.Context, stagingID types.StagingID, candidateIDs []string) (*ConfirmResult, error) {
	result := &ConfirmResult{}
	if len(candidateIDs) == 0 {
		return result, nil
	}

	uc.mu.Lock()
	if uc.stagingID == "" || uc.stagingID != stagingID {
		uc.mu.Unlock()
		return nil, goerr.Wrap(ErrStagingNotFound, "staging ID does not match current batch",
			goerr.V("stagingID", stagingID))
	}
	byID := make(map[string]*model.DetectedRisk, len(uc.staged))
	for _, c := range uc.staged {
		byID[c.CandidateID] = c
	}
	uc.mu.Unlock()

	now := time.Now().UTC()
	confirmedIDs := make(map[string]struct{})

	for _, id := range candidateIDs {
		candidate, ok := byID[id]
		if !ok {
			result.Failed = append(result.Failed, ConfirmFailure{
				CandidateID: id,
				Err:         goerr.New("candidate not in staged batch", goerr.V("candidateID", id)),
			})
			continue
		}
		if _, done := confirmedIDs[id]; done {
			continue
		}

		created, err := uc.repo.Risk().Create(ctx, candidate.ToRisk(now))
		if err != nil {
			result.Failed = append(result.Failed, ConfirmFailure{
				CandidateID: id,
				Err:         goerr.Wrap(err, "failed to persist confirmed risk", goerr.V("candidateID", id)),
			})
			continue
		}

		confirmedIDs[id] = struct{}{}
		result.Confirmed = append(result.Confirmed, created)
	}

	uc.mu.Lock()
	if uc.stagingID == stagingID {
		remaining := uc.staged[:0]
		for _, c := range uc.staged {
			if _, done := confirmedIDs[c.CandidateID]; !done {
				remaining = append(remaining, c)
			}
		}
		uc.staged = remaining
	}
	uc.mu.Unlock()

	if uc.notifier != nil && len(result.Confirmed) > 0 {
		// Best effort, off the request path
		confirmed := result.Confirmed
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifyConfirmedRisks(ctx, confirmed)
		})
	}

	return result, nil
}

func (uc *DetectionUseCase) gatherSnapshot(ctx context.Context) (*model.OrgSnapshot, error) {
	snapshot := &model.OrgSnapshot{}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		assets, err := uc.repo.Asset().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list assets")
		}
		snapshot.Assets = assets
		return nil
	})
	eg.Go(func() error {
		personnel, err := uc.repo.Personnel().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list personnel")
		}
		snapshot.Personnel = personnel
		return nil
	})
	eg.Go(func() error {
		plans, err := uc.repo.Travel().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list travel plans")
		}
		snapshot.TravelPlans = plans
		return nil
	})
	eg.Go(func() error {
		incidents, err := uc.repo.Incident().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list incidents")
		}
		snapshot.Incidents = incidents
		return nil
	})
	eg.Go(func() error {
		risks, err := uc.repo.Risk().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list risks")
		}
		snapshot.Risks = risks
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
