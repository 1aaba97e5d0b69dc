package types_test

import (
	"testing"

	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func TestEntityKind_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kind    types.EntityKind
		wantErr bool
	}{
		{"asset", types.EntityKindAsset, false},
		{"personnel", types.EntityKindPersonnel, false},
		{"travel", types.EntityKindTravel, false},
		{"incident", types.EntityKindIncident, false},
		{"empty", "", true},
		{"unknown", "vehicle", true},
		{"uppercase", "Asset", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("EntityKind.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMitigationCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category types.MitigationCategory
		wantErr  bool
	}{
		{"personnel", types.MitigationCategoryPersonnel, false},
		{"asset", types.MitigationCategoryAsset, false},
		{"travel", types.MitigationCategoryTravel, false},
		{"general", types.MitigationCategoryGeneral, false},
		{"empty", "", true},
		{"unknown", "network", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("MitigationCategory.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRiskSourceType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		source  types.RiskSourceType
		wantErr bool
	}{
		{"asset", types.RiskSourceAsset, false},
		{"personnel", types.RiskSourcePersonnel, false},
		{"incident", types.RiskSourceIncident, false},
		{"travel", types.RiskSourceTravel, false},
		{"pattern", types.RiskSourcePattern, false},
		{"empty", "", true},
		{"unknown", "external", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("RiskSourceType.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRiskTrend_Validate(t *testing.T) {
	tests := []struct {
		name    string
		trend   types.RiskTrend
		wantErr bool
	}{
		{"improving", types.RiskTrendImproving, false},
		{"stable", types.RiskTrendStable, false},
		{"deteriorating", types.RiskTrendDeteriorating, false},
		{"empty", "", true},
		{"unknown", "volatile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.trend.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("RiskTrend.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIDGeneration(t *testing.T) {
	t.Run("generated IDs are valid", func(t *testing.T) {
		if err := types.NewAssetID().Validate(); err != nil {
			t.Errorf("NewAssetID() produced invalid ID: %v", err)
		}
		if err := types.NewMitigationID().Validate(); err != nil {
			t.Errorf("NewMitigationID() produced invalid ID: %v", err)
		}
	})

	t.Run("generated IDs are unique", func(t *testing.T) {
		a := types.NewAssetID()
		b := types.NewAssetID()
		if a == b {
			t.Errorf("expected distinct IDs, got %s twice", a)
		}
	})

	t.Run("invalid UUID rejected", func(t *testing.T) {
		if err := types.AssetID("not-a-uuid").Validate(); err == nil {
			t.Error("expected error for non-UUID asset ID")
		}
	})
}
