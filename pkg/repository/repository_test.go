package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/repository/firestore"
	"github.com/secops-lab/panoptes/pkg/repository/memory"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Asset round-trips assessment and mitigations", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		appliedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
		asset := &model.Asset{
			ID:          types.NewAssetID(),
			Name:        "Tokyo API gateway",
			Description: "Public edge for the partner API",
			AssetType:   "server",
			Location:    "Tokyo DC-2",
			Owner:       "platform",
			Department:  "engineering",
			Assessment: &model.RiskAssessment{
				Overall:            45,
				OriginalScore:      60,
				Components:         model.RiskComponents{"exposure": 70, "patching": 40},
				Trend:              types.RiskTrendDeteriorating,
				Confidence:         80,
				Recommendations:    []string{"Rotate edge certificates"},
				MitigationApplied:  true,
				TotalRiskReduction: 15,
				LastUpdated:        appliedAt,
			},
			Mitigations: []model.AppliedMitigation{
				{
					MitigationID:     types.NewMitigationID(),
					Name:             "WAF enabled",
					Category:         types.MitigationCategoryAsset,
					AppliedReduction: 15,
					AppliedBy:        "alice",
					AppliedAt:        appliedAt,
				},
			},
		}

		created, err := repo.Asset().Create(ctx, asset)
		if err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("expected non-zero timestamps")
		}

		retrieved, err := repo.Asset().Get(ctx, asset.ID)
		if err != nil {
			t.Fatalf("failed to get asset: %v", err)
		}
		if retrieved.Name != asset.Name {
			t.Errorf("expected name=%s, got %s", asset.Name, retrieved.Name)
		}
		if retrieved.Assessment == nil {
			t.Fatal("expected assessment to survive the round trip")
		}
		if retrieved.Assessment.Overall != 45 {
			t.Errorf("expected overall=45, got %d", retrieved.Assessment.Overall)
		}
		if retrieved.Assessment.OriginalScore != 60 {
			t.Errorf("expected originalScore=60, got %d", retrieved.Assessment.OriginalScore)
		}
		if retrieved.Assessment.Components["exposure"] != 70 {
			t.Errorf("expected exposure component=70, got %d", retrieved.Assessment.Components["exposure"])
		}
		if len(retrieved.Mitigations) != 1 {
			t.Fatalf("expected 1 mitigation, got %d", len(retrieved.Mitigations))
		}
		if retrieved.Mitigations[0].AppliedReduction != 15 {
			t.Errorf("expected appliedReduction=15, got %d", retrieved.Mitigations[0].AppliedReduction)
		}
		if retrieved.Mitigations[0].AppliedBy != "alice" {
			t.Errorf("expected appliedBy=alice, got %s", retrieved.Mitigations[0].AppliedBy)
		}
		if !retrieved.Mitigations[0].AppliedAt.Equal(appliedAt) {
			t.Errorf("expected appliedAt=%v, got %v", appliedAt, retrieved.Mitigations[0].AppliedAt)
		}
	})

	t.Run("Asset update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Asset().Create(ctx, &model.Asset{
			ID:   types.NewAssetID(),
			Name: "Old name",
		})
		if err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}

		time.Sleep(10 * time.Millisecond)

		updated, err := repo.Asset().Update(ctx, &model.Asset{
			ID:   created.ID,
			Name: "New name",
		})
		if err != nil {
			t.Fatalf("failed to update asset: %v", err)
		}
		if updated.Name != "New name" {
			t.Errorf("expected name='New name', got %s", updated.Name)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("CreatedAt should not change, got %v", updated.CreatedAt)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Errorf("UpdatedAt should be after original, got %v", updated.UpdatedAt)
		}
	})

	t.Run("Asset get returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Asset().Get(ctx, types.NewAssetID())
		if err == nil {
			t.Error("expected error for non-existent asset")
		}
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Asset delete removes the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Asset().Create(ctx, &model.Asset{
			ID:   types.NewAssetID(),
			Name: "Disposable",
		})
		if err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}

		if err := repo.Asset().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete asset: %v", err)
		}

		_, err = repo.Asset().Get(ctx, created.ID)
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Personnel CRUD", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		person := &model.Personnel{
			ID:             types.NewPersonnelID(),
			Name:           "Dana Ito",
			Email:          "dana@example.com",
			Role:           "site reliability engineer",
			Department:     "engineering",
			Location:       "Osaka",
			ClearanceLevel: "secret",
		}

		if _, err := repo.Personnel().Create(ctx, person); err != nil {
			t.Fatalf("failed to create personnel: %v", err)
		}

		retrieved, err := repo.Personnel().Get(ctx, person.ID)
		if err != nil {
			t.Fatalf("failed to get personnel: %v", err)
		}
		if retrieved.Email != person.Email {
			t.Errorf("expected email=%s, got %s", person.Email, retrieved.Email)
		}
		if retrieved.ClearanceLevel != person.ClearanceLevel {
			t.Errorf("expected clearance=%s, got %s", person.ClearanceLevel, retrieved.ClearanceLevel)
		}

		list, err := repo.Personnel().List(ctx)
		if err != nil {
			t.Fatalf("failed to list personnel: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 personnel record, got %d", len(list))
		}
	})

	t.Run("TravelPlan CRUD keeps dates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		departure := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		ret := departure.AddDate(0, 0, 7)

		plan := &model.TravelPlan{
			ID:            types.NewTravelPlanID(),
			PersonnelID:   types.NewPersonnelID(),
			Destination:   "Nairobi",
			Country:       "Kenya",
			Purpose:       "vendor audit",
			DepartureDate: departure,
			ReturnDate:    ret,
			Status:        "pending",
		}

		if _, err := repo.Travel().Create(ctx, plan); err != nil {
			t.Fatalf("failed to create travel plan: %v", err)
		}

		retrieved, err := repo.Travel().Get(ctx, plan.ID)
		if err != nil {
			t.Fatalf("failed to get travel plan: %v", err)
		}
		if !retrieved.DepartureDate.Equal(departure) {
			t.Errorf("expected departure=%v, got %v", departure, retrieved.DepartureDate)
		}
		if !retrieved.ReturnDate.Equal(ret) {
			t.Errorf("expected return=%v, got %v", ret, retrieved.ReturnDate)
		}
		if retrieved.PersonnelID != plan.PersonnelID {
			t.Errorf("expected personnelID=%s, got %s", plan.PersonnelID, retrieved.PersonnelID)
		}
	})

	t.Run("Incident CRUD", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		incident := &model.Incident{
			ID:          types.NewIncidentID(),
			Title:       "Unauthorized badge use",
			Description: "Badge used at two sites within an hour",
			Severity:    "high",
			Status:      "investigating",
			Department:  "security",
			OccurredAt:  time.Date(2026, 5, 2, 3, 12, 0, 0, time.UTC),
		}

		if _, err := repo.Incident().Create(ctx, incident); err != nil {
			t.Fatalf("failed to create incident: %v", err)
		}

		retrieved, err := repo.Incident().Get(ctx, incident.ID)
		if err != nil {
			t.Fatalf("failed to get incident: %v", err)
		}
		if retrieved.Severity != "high" {
			t.Errorf("expected severity=high, got %s", retrieved.Severity)
		}

		if err := repo.Incident().Delete(ctx, incident.ID); err != nil {
			t.Fatalf("failed to delete incident: %v", err)
		}
		if _, err := repo.Incident().Get(ctx, incident.ID); !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Risk create assigns auto-increment IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created1, err := repo.Risk().Create(ctx, &model.Risk{
			Title:       "Stale VPN credentials",
			Description: "Contractor VPN accounts outlive contracts",
		})
		if err != nil {
			t.Fatalf("failed to create risk1: %v", err)
		}
		if created1.ID != 1 {
			t.Errorf("expected ID=1, got %d", created1.ID)
		}
		if created1.CreatedAt.IsZero() || created1.UpdatedAt.IsZero() {
			t.Error("expected non-zero timestamps")
		}

		created2, err := repo.Risk().Create(ctx, &model.Risk{
			Title:       "Unencrypted backups",
			Description: "Offsite backups stored without encryption",
		})
		if err != nil {
			t.Fatalf("failed to create risk2: %v", err)
		}
		if created2.ID != 2 {
			t.Errorf("expected ID=2, got %d", created2.ID)
		}
	})

	t.Run("Risk persists detection metadata", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		detectedAt := time.Date(2026, 7, 20, 14, 0, 0, 0, time.UTC)
		sourceID := types.NewPersonnelID()

		created, err := repo.Risk().Create(ctx, &model.Risk{
			Title:             "Clearance lapse",
			Description:       "Clearance expires before mission end",
			Category:          "personnel",
			Impact:            "high",
			Likelihood:        "medium",
			Department:        "operations",
			MitigationPlan:    "Renew clearance\n\nAssign backup operator",
			IsAIGenerated:     true,
			AIConfidence:      85,
			AIDetectionDate:   &detectedAt,
			SourcePersonnelID: sourceID,
		})
		if err != nil {
			t.Fatalf("failed to create risk: %v", err)
		}

		retrieved, err := repo.Risk().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get risk: %v", err)
		}
		if !retrieved.IsAIGenerated {
			t.Error("expected IsAIGenerated=true")
		}
		if retrieved.AIConfidence != 85 {
			t.Errorf("expected AIConfidence=85, got %d", retrieved.AIConfidence)
		}
		if retrieved.AIDetectionDate == nil || !retrieved.AIDetectionDate.Equal(detectedAt) {
			t.Errorf("expected AIDetectionDate=%v, got %v", detectedAt, retrieved.AIDetectionDate)
		}
		if retrieved.SourcePersonnelID != sourceID {
			t.Errorf("expected sourcePersonnelID=%s, got %s", sourceID, retrieved.SourcePersonnelID)
		}
		if retrieved.SourceAssetID != "" {
			t.Errorf("expected empty sourceAssetID, got %s", retrieved.SourceAssetID)
		}
		if retrieved.MitigationPlan != created.MitigationPlan {
			t.Errorf("expected mitigationPlan preserved, got %q", retrieved.MitigationPlan)
		}
	})

	t.Run("Risk update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, &model.Risk{
			Title: "Original title",
		})
		if err != nil {
			t.Fatalf("failed to create risk: %v", err)
		}

		time.Sleep(10 * time.Millisecond)

		updated, err := repo.Risk().Update(ctx, &model.Risk{
			ID:    created.ID,
			Title: "Updated title",
		})
		if err != nil {
			t.Fatalf("failed to update risk: %v", err)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("CreatedAt should not change, got %v", updated.CreatedAt)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Errorf("UpdatedAt should be after original, got %v", updated.UpdatedAt)
		}
	})

	t.Run("Risk operations return ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Risk().Get(ctx, 99999); !isNotFound(err) {
			t.Errorf("expected ErrNotFound on get, got %v", err)
		}
		if _, err := repo.Risk().Update(ctx, &model.Risk{ID: 99999, Title: "nope"}); !isNotFound(err) {
			t.Errorf("expected ErrNotFound on update, got %v", err)
		}
		if err := repo.Risk().Delete(ctx, 99999); !isNotFound(err) {
			t.Errorf("expected ErrNotFound on delete, got %v", err)
		}
	})

	t.Run("Mitigation definitions CRUD", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		def := &model.MitigationDefinition{
			ID:               types.NewMitigationID(),
			Name:             "Hardware key rollout",
			Description:      "Replace TOTP with FIDO2 keys",
			Category:         types.MitigationCategoryPersonnel,
			DefaultReduction: 20,
			IsCustom:         true,
		}

		created, err := repo.Mitigation().Create(ctx, def)
		if err != nil {
			t.Fatalf("failed to create definition: %v", err)
		}
		if created.ID != def.ID {
			t.Errorf("expected ID=%s, got %s", def.ID, created.ID)
		}

		retrieved, err := repo.Mitigation().Get(ctx, def.ID)
		if err != nil {
			t.Fatalf("failed to get definition: %v", err)
		}
		if retrieved.DefaultReduction != 20 {
			t.Errorf("expected defaultReduction=20, got %d", retrieved.DefaultReduction)
		}
		if !retrieved.IsCustom {
			t.Error("expected IsCustom=true")
		}

		list, err := repo.Mitigation().List(ctx)
		if err != nil {
			t.Fatalf("failed to list definitions: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 definition, got %d", len(list))
		}

		if err := repo.Mitigation().Delete(ctx, def.ID); err != nil {
			t.Fatalf("failed to delete definition: %v", err)
		}
		if _, err := repo.Mitigation().Get(ctx, def.ID); !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Mitigation create rejects invalid definitions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Mitigation().Create(ctx, &model.MitigationDefinition{
			ID:               types.NewMitigationID(),
			Name:             "Over-reduction",
			Category:         types.MitigationCategoryGeneral,
			DefaultReduction: 150,
		})
		if err == nil {
			t.Error("expected error for out-of-range reduction")
		}
	})

	t.Run("Get returns a copy, not shared state", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		asset := &model.Asset{
			ID:   types.NewAssetID(),
			Name: "Immutable",
			Mitigations: []model.AppliedMitigation{
				{MitigationID: types.NewMitigationID(), Name: "Backups", AppliedReduction: 10},
			},
		}
		if _, err := repo.Asset().Create(ctx, asset); err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}

		first, err := repo.Asset().Get(ctx, asset.ID)
		if err != nil {
			t.Fatalf("failed to get asset: %v", err)
		}
		first.Name = "Mutated"
		first.Mitigations[0].AppliedReduction = 99

		second, err := repo.Asset().Get(ctx, asset.ID)
		if err != nil {
			t.Fatalf("failed to get asset again: %v", err)
		}
		if second.Name != "Immutable" {
			t.Errorf("stored name changed via returned pointer: %s", second.Name)
		}
		if second.Mitigations[0].AppliedReduction != 10 {
			t.Errorf("stored mitigation changed via returned slice: %d", second.Mitigations[0].AppliedReduction)
		}
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepository)
}
