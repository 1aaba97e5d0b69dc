package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// DetectedRisk is an unconfirmed, AI-proposed candidate for the risk register.
// It exists only between detection and user confirmation; confirmed candidates
// are converted 1:1 into persisted Risk records.
type DetectedRisk struct {
	CandidateID     string               `json:"candidate_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Category        string               `json:"category,omitempty"`
	Impact          string               `json:"impact,omitempty"`
	Likelihood      string               `json:"likelihood,omitempty"`
	Confidence      int                  `json:"confidence"`
	SourceType      types.RiskSourceType `json:"source_type"`
	SourceID        string               `json:"source_id,omitempty"`
	Department      string               `json:"department,omitempty"`
	Recommendations []string             `json:"recommendations,omitempty"`
}

// Validate checks the candidate is well-formed
func (d *DetectedRisk) Validate() error {
	if d.Title == "" {
		return goerr.New("detected risk title is required")
	}
	if err := d.SourceType.Validate(); err != nil {
		return goerr.Wrap(err, "invalid detected risk source type")
	}
	if d.SourceType != types.RiskSourcePattern && d.SourceID == "" {
		return goerr.New("source ID is required for non-pattern detections",
			goerr.V("source_type", d.SourceType))
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		return goerr.New("detection confidence out of range", goerr.V("confidence", d.Confidence))
	}
	return nil
}

// ToRisk converts a confirmed candidate into a persistable register entry.
// Exactly one source ID field is set according to the source type; pattern
// detections set none. The mitigation plan is the recommendation list joined
// with blank lines.
func (d *DetectedRisk) ToRisk(now time.Time) *Risk {
	risk := &Risk{
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		Impact:          d.Impact,
		Likelihood:      d.Likelihood,
		Department:      d.Department,
		MitigationPlan:  strings.Join(d.Recommendations, "\n\n"),
		IsAIGenerated:   true,
		AIConfidence:    d.Confidence,
		AIDetectionDate: &now,
	}

	switch d.SourceType {
	case types.RiskSourceAsset:
		risk.SourceAssetID = types.AssetID(d.SourceID)
	case types.RiskSourcePersonnel:
		risk.SourcePersonnelID = types.PersonnelID(d.SourceID)
	case types.RiskSourceIncident:
		risk.SourceIncidentID = types.IncidentID(d.SourceID)
	case types.RiskSourceTravel:
		risk.SourceTravelPlanID = types.TravelPlanID(d.SourceID)
	case types.RiskSourcePattern:
		// no single source record
	}

	return risk
}
