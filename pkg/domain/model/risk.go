package model

import (
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// Risk is an entry in the organizational risk register. AI-generated entries
// keep the detection metadata; at most one Source*ID field is set, identifying
// the record the risk was detected from.
type Risk struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Category        string     `json:"category,omitempty"`
	Impact          string     `json:"impact,omitempty"`
	Likelihood      string     `json:"likelihood,omitempty"`
	Department      string     `json:"department,omitempty"`
	MitigationPlan  string     `json:"mitigation_plan,omitempty"`
	IsAIGenerated   bool       `json:"is_ai_generated"`
	AIConfidence    int        `json:"ai_confidence,omitempty"`
	AIDetectionDate *time.Time `json:"ai_detection_date,omitempty"`

	SourceAssetID      types.AssetID      `json:"source_asset_id,omitempty"`
	SourcePersonnelID  types.PersonnelID  `json:"source_personnel_id,omitempty"`
	SourceIncidentID   types.IncidentID   `json:"source_incident_id,omitempty"`
	SourceTravelPlanID types.TravelPlanID `json:"source_travel_plan_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
