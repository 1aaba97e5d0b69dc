package firestore

import (
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// The risk assessment and applied mitigations are stored as embedded documents
// on the owning entity, not as a separate collection.

type assessmentDocument struct {
	Overall            int            `firestore:"overall"`
	OriginalScore      int            `firestore:"original_score"`
	Components         map[string]int `firestore:"components,omitempty"`
	Trend              string         `firestore:"trend"`
	Confidence         int            `firestore:"confidence"`
	Recommendations    []string       `firestore:"recommendations,omitempty"`
	Explanation        string         `firestore:"explanation,omitempty"`
	MitigationApplied  bool           `firestore:"mitigation_applied"`
	TotalRiskReduction int            `firestore:"total_risk_reduction"`
	LastUpdated        time.Time      `firestore:"last_updated"`
}

type mitigationEntryDocument struct {
	MitigationID     string    `firestore:"mitigation_id"`
	Name             string    `firestore:"name"`
	Description      string    `firestore:"description"`
	Category         string    `firestore:"category"`
	AppliedReduction int       `firestore:"applied_reduction"`
	Notes            string    `firestore:"notes,omitempty"`
	AppliedBy        string    `firestore:"applied_by"`
	AppliedAt        time.Time `firestore:"applied_at"`
}

func toAssessmentDocument(a *model.RiskAssessment) *assessmentDocument {
	if a == nil {
		return nil
	}
	return &assessmentDocument{
		Overall:            a.Overall,
		OriginalScore:      a.OriginalScore,
		Components:         a.Components,
		Trend:              a.Trend.String(),
		Confidence:         a.Confidence,
		Recommendations:    a.Recommendations,
		Explanation:        a.Explanation,
		MitigationApplied:  a.MitigationApplied,
		TotalRiskReduction: a.TotalRiskReduction,
		LastUpdated:        a.LastUpdated,
	}
}

func fromAssessmentDocument(d *assessmentDocument) *model.RiskAssessment {
	if d == nil {
		return nil
	}
	return &model.RiskAssessment{
		Overall:            d.Overall,
		OriginalScore:      d.OriginalScore,
		Components:         d.Components,
		Trend:              types.RiskTrend(d.Trend),
		Confidence:         d.Confidence,
		Recommendations:    d.Recommendations,
		Explanation:        d.Explanation,
		MitigationApplied:  d.MitigationApplied,
		TotalRiskReduction: d.TotalRiskReduction,
		LastUpdated:        d.LastUpdated,
	}
}

func toMitigationDocuments(entries []model.AppliedMitigation) []mitigationEntryDocument {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]mitigationEntryDocument, len(entries))
	for i, e := range entries {
		docs[i] = mitigationEntryDocument{
			MitigationID:     e.MitigationID.String(),
			Name:             e.Name,
			Description:      e.Description,
			Category:         e.Category.String(),
			AppliedReduction: e.AppliedReduction,
			Notes:            e.Notes,
			AppliedBy:        e.AppliedBy,
			AppliedAt:        e.AppliedAt,
		}
	}
	return docs
}

func fromMitigationDocuments(docs []mitigationEntryDocument) []model.AppliedMitigation {
	if len(docs) == 0 {
		return nil
	}
	entries := make([]model.AppliedMitigation, len(docs))
	for i, d := range docs {
		entries[i] = model.AppliedMitigation{
			MitigationID:     types.MitigationID(d.MitigationID),
			Name:             d.Name,
			Description:      d.Description,
			Category:         types.MitigationCategory(d.Category),
			AppliedReduction: d.AppliedReduction,
			Notes:            d.Notes,
			AppliedBy:        d.AppliedBy,
			AppliedAt:        d.AppliedAt,
		}
	}
	return entries
}
