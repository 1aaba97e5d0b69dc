package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/repository/memory"
	"github.com/secops-lab/panoptes/pkg/service/catalog"
	"github.com/secops-lab/panoptes/pkg/usecase"
)

// mockScorer is a mock interfaces.Scorer for testing
type mockScorer struct {
	scoreFn  func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error)
	detectFn func(ctx context.Context, orgID string, snapshot *model.OrgSnapshot) ([]*model.DetectedRisk, error)
}

func (m *mockScorer) ScoreRisk(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
	if m.scoreFn != nil {
		return m.scoreFn(ctx, kind, snapshot)
	}
	return &model.RawAssessment{
		Score:      40,
		Trend:      types.RiskTrendStable,
		Confidence: 75,
	}, nil
}

func (m *mockScorer) DetectRisks(ctx context.Context, orgID string, snapshot *model.OrgSnapshot) ([]*model.DetectedRisk, error) {
	if m.detectFn != nil {
		return m.detectFn(ctx, orgID, snapshot)
	}
	return nil, nil
}

var _ interfaces.Scorer = &mockScorer{}

func newCatalog(t *testing.T, repo interfaces.Repository, defs ...*model.MitigationDefinition) *catalog.Service {
	t.Helper()
	svc, err := catalog.New(repo.Mitigation(), defs)
	gt.NoError(t, err).Required()
	return svc
}

func seededDef(name string, reduction int) *model.MitigationDefinition {
	return &model.MitigationDefinition{
		ID:               types.NewMitigationID(),
		Name:             name,
		Category:         types.MitigationCategoryGeneral,
		DefaultReduction: reduction,
	}
}

func createAsset(t *testing.T, uc *usecase.UseCases, name string) *model.Asset {
	t.Helper()
	asset, err := uc.Asset.Create(context.Background(), &model.Asset{Name: name})
	gt.NoError(t, err).Required()
	return asset
}

func TestAssessmentScore(t *testing.T) {
	ctx := context.Background()

	t.Run("stores scorer result on creation", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithScorer(&mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				return &model.RawAssessment{
					Score:           60,
					Components:      model.RiskComponents{"exposure": 70},
					Trend:           types.RiskTrendDeteriorating,
					Confidence:      85,
					Recommendations: []string{"Harden access"},
				}, nil
			},
		}))

		asset := createAsset(t, uc, "Edge gateway")

		gt.Value(t, asset.Assessment.Overall).Equal(60)
		gt.Value(t, asset.Assessment.OriginalScore).Equal(60)
		gt.Value(t, asset.Assessment.TotalRiskReduction).Equal(0)
		gt.Bool(t, asset.Assessment.MitigationApplied).False()
		gt.Value(t, asset.Assessment.Trend).Equal(types.RiskTrendDeteriorating)
	})

	t.Run("scorer failure falls back to default assessment", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithScorer(&mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				return nil, errors.New("inference endpoint down")
			},
		}))

		asset := createAsset(t, uc, "Offline-scored asset")

		gt.Value(t, asset.Assessment.Overall).Equal(model.DefaultRiskScore)
		gt.Value(t, asset.Assessment.OriginalScore).Equal(model.DefaultRiskScore)
		gt.Value(t, asset.Assessment.Trend).Equal(types.RiskTrendStable)
		gt.Value(t, asset.Assessment.Confidence).Equal(0)
		gt.Value(t, asset.Assessment.Explanation).Equal("")
	})

	t.Run("out-of-range score falls back to default, never clamps", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithScorer(&mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				return &model.RawAssessment{Score: 180, Trend: types.RiskTrendStable, Confidence: 50}, nil
			},
		}))

		asset := createAsset(t, uc, "Overscored asset")

		gt.Value(t, asset.Assessment.Overall).Equal(model.DefaultRiskScore)
	})

	t.Run("missing scorer yields default assessment", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		asset := createAsset(t, uc, "Unscored asset")

		gt.Value(t, asset.Assessment.Overall).Equal(model.DefaultRiskScore)
	})

	t.Run("concurrent submissions of one draft share a single scorer call", func(t *testing.T) {
		var calls atomic.Int32
		release := make(chan struct{})
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithScorer(&mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				calls.Add(1)
				<-release
				return &model.RawAssessment{Score: 30, Trend: types.RiskTrendStable, Confidence: 60}, nil
			},
		}))

		snapshot := &model.EntitySnapshot{Kind: types.EntityKindAsset, ID: "draft-1"}

		var wg sync.WaitGroup
		results := make([]*model.RiskAssessment, 3)
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				a, err := uc.Assessment.Score(ctx, types.EntityKindAsset, "draft-1", snapshot)
				gt.NoError(t, err)
				results[i] = a
			}(i)
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		gt.Value(t, calls.Load()).Equal(int32(1))
		for _, a := range results {
			gt.Value(t, a.Overall).Equal(30)
		}
	})

	t.Run("cancelled context discards the in-flight result", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithScorer(&mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				close(started)
				<-release
				return &model.RawAssessment{Score: 30, Trend: types.RiskTrendStable, Confidence: 60}, nil
			},
		}))

		cctx, cancel := context.WithCancel(ctx)
		go func() {
			<-started
			cancel()
		}()

		_, err := uc.Assessment.Score(cctx, types.EntityKindAsset, "draft-2",
			&model.EntitySnapshot{Kind: types.EntityKindAsset, ID: "draft-2"})
		close(release)

		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, context.Canceled)).True()
	})
}

func TestAssessmentMitigations(t *testing.T) {
	ctx := context.Background()

	fixedScorer := func(score int) *mockScorer {
		return &mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				return &model.RawAssessment{Score: score, Trend: types.RiskTrendStable, Confidence: 80}, nil
			},
		}
	}

	t.Run("add and remove recompute from the frozen original score", func(t *testing.T) {
		repo := memory.New()
		def15 := seededDef("Badge audit", 15)
		def20 := seededDef("Network segmentation", 20)
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(60)),
			usecase.WithCatalog(newCatalog(t, repo, def15, def20)),
		)

		asset := createAsset(t, uc, "Core switch")

		a, err := uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def15.ID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, a.Overall).Equal(45)

		a, err = uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def20.ID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, a.TotalRiskReduction).Equal(35)
		gt.Value(t, a.Overall).Equal(25)
		gt.Bool(t, a.MitigationApplied).True()
		gt.Value(t, a.OriginalScore).Equal(60)

		a, err = uc.Assessment.RemoveMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def20.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, a.TotalRiskReduction).Equal(15)
		gt.Value(t, a.Overall).Equal(45)

		// The mutation must be persisted, not just returned
		stored, err := repo.Asset().Get(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, stored.Mitigations).Length(1)
		gt.Value(t, stored.Assessment.Overall).Equal(45)
	})

	t.Run("duplicate add is rejected and leaves state unchanged", func(t *testing.T) {
		repo := memory.New()
		def := seededDef("Badge audit", 15)
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(60)),
			usecase.WithCatalog(newCatalog(t, repo, def)),
		)

		asset := createAsset(t, uc, "Core switch")

		_, err := uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def.ID, "alice")
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def.ID, "bob")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrDuplicateMitigation)).True()

		stored, err := repo.Asset().Get(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, stored.Mitigations).Length(1)
		gt.Value(t, stored.Assessment.Overall).Equal(45)
	})

	t.Run("removing an absent mitigation is a no-op", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(60)),
			usecase.WithCatalog(newCatalog(t, repo)),
		)

		asset := createAsset(t, uc, "Core switch")

		a, err := uc.Assessment.RemoveMitigation(ctx, types.EntityKindAsset, asset.ID.String(), types.NewMitigationID())
		gt.NoError(t, err)
		gt.Value(t, a.Overall).Equal(60)
	})

	t.Run("update preserves who applied the mitigation", func(t *testing.T) {
		repo := memory.New()
		def := seededDef("Badge audit", 20)
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(60)),
			usecase.WithCatalog(newCatalog(t, repo, def)),
		)

		asset := createAsset(t, uc, "Core switch")
		_, err := uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def.ID, "alice")
		gt.NoError(t, err).Required()

		zero := 0
		notes := "reduction waived pending audit"
		a, err := uc.Assessment.UpdateMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def.ID,
			model.MitigationPatch{AppliedReduction: &zero, Notes: &notes})
		gt.NoError(t, err).Required()

		// reduction 20 -> 0 raises overall by 20
		gt.Value(t, a.Overall).Equal(60)
		gt.Value(t, a.TotalRiskReduction).Equal(0)
		gt.Bool(t, a.MitigationApplied).False()

		stored, err := repo.Asset().Get(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Mitigations[0].AppliedBy).Equal("alice")
		gt.Value(t, stored.Mitigations[0].Notes).Equal(notes)
	})

	t.Run("updating an absent mitigation fails", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(60)),
			usecase.WithCatalog(newCatalog(t, repo)),
		)

		asset := createAsset(t, uc, "Core switch")

		ten := 10
		_, err := uc.Assessment.UpdateMitigation(ctx, types.EntityKindAsset, asset.ID.String(), types.NewMitigationID(),
			model.MitigationPatch{AppliedReduction: &ten})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrMitigationNotFound)).True()
	})

	t.Run("reduction clamps overall at zero", func(t *testing.T) {
		repo := memory.New()
		def := seededDef("Heavy control", 30)
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(10)),
			usecase.WithCatalog(newCatalog(t, repo, def)),
		)

		asset := createAsset(t, uc, "Low-risk asset")

		a, err := uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def.ID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, a.Overall).Equal(0)
		gt.Value(t, a.TotalRiskReduction).Equal(30)
		gt.Value(t, a.OriginalScore).Equal(10)
	})

	t.Run("legacy assessment without original score is backfilled exactly once", func(t *testing.T) {
		repo := memory.New()
		def := seededDef("Badge audit", 15)
		uc := usecase.New(repo,
			usecase.WithCatalog(newCatalog(t, repo, def)),
		)

		// Seed a legacy record directly: overall present, original missing
		legacy, err := repo.Asset().Create(ctx, &model.Asset{
			ID:   types.NewAssetID(),
			Name: "Legacy asset",
			Assessment: &model.RiskAssessment{
				Overall:     50,
				Trend:       types.RiskTrendStable,
				LastUpdated: time.Now().UTC(),
			},
		})
		gt.NoError(t, err).Required()

		a, err := uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, legacy.ID.String(), def.ID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, a.OriginalScore).Equal(50)
		gt.Value(t, a.Overall).Equal(35)

		// Second mutation must not backfill again from the reduced overall
		a, err = uc.Assessment.RemoveMitigation(ctx, types.EntityKindAsset, legacy.ID.String(), def.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, a.OriginalScore).Equal(50)
		gt.Value(t, a.Overall).Equal(50)
	})

	t.Run("mitigations work across entity kinds", func(t *testing.T) {
		repo := memory.New()
		def := seededDef("Travel security briefing", 10)
		uc := usecase.New(repo,
			usecase.WithScorer(fixedScorer(40)),
			usecase.WithCatalog(newCatalog(t, repo, def)),
		)

		person, err := uc.Personnel.Create(ctx, &model.Personnel{Name: "Dana Ito"})
		gt.NoError(t, err).Required()

		plan, err := uc.Travel.Create(ctx, &model.TravelPlan{
			PersonnelID:   person.ID,
			Destination:   "Nairobi",
			DepartureDate: time.Now().Add(24 * time.Hour),
			ReturnDate:    time.Now().Add(48 * time.Hour),
		})
		gt.NoError(t, err).Required()

		a, err := uc.Assessment.AddMitigation(ctx, types.EntityKindTravel, plan.ID.String(), def.ID, "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, a.Overall).Equal(30)

		a, err = uc.Assessment.AddMitigation(ctx, types.EntityKindPersonnel, person.ID.String(), def.ID, "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, a.Overall).Equal(30)
	})

	t.Run("incident kind does not support mitigations", func(t *testing.T) {
		repo := memory.New()
		def := seededDef("Badge audit", 15)
		uc := usecase.New(repo, usecase.WithCatalog(newCatalog(t, repo, def)))

		_, err := uc.Assessment.AddMitigation(ctx, types.EntityKindIncident, "some-id", def.ID, "alice")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnsupportedEntityKind)).True()
	})
}

func TestEntityEditPreservesAssessment(t *testing.T) {
	ctx := context.Background()

	repo := memory.New()
	def := seededDef("Badge audit", 15)
	uc := usecase.New(repo,
		usecase.WithScorer(&mockScorer{
			scoreFn: func(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
				return &model.RawAssessment{Score: 60, Trend: types.RiskTrendStable, Confidence: 80}, nil
			},
		}),
		usecase.WithCatalog(newCatalog(t, repo, def)),
	)

	asset := createAsset(t, uc, "Core switch")
	_, err := uc.Assessment.AddMitigation(ctx, types.EntityKindAsset, asset.ID.String(), def.ID, "alice")
	gt.NoError(t, err).Required()

	updated, err := uc.Asset.Update(ctx, &model.Asset{
		ID:   asset.ID,
		Name: "Core switch (renamed)",
		// Caller-sent assessment must be ignored in favor of stored state
		Assessment: &model.RiskAssessment{Overall: 1, OriginalScore: 1},
	})
	gt.NoError(t, err).Required()

	gt.Value(t, updated.Name).Equal("Core switch (renamed)")
	gt.Value(t, updated.Assessment.OriginalScore).Equal(60)
	gt.Value(t, updated.Assessment.Overall).Equal(45)
	gt.Array(t, updated.Mitigations).Length(1)
}
