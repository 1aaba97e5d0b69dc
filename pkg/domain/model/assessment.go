package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// DefaultRiskScore is the documented fallback score used when the scorer is
// unavailable or returns an out-of-range value. Substituting the default is a
// policy decision at the call boundary, never inside the assessment itself.
const DefaultRiskScore = 25

// RiskComponents maps named sub-scores (e.g. accessRisk, travelRisk) to values
// in [0,100]. Informational only; it does not feed the aggregate formula.
type RiskComponents map[string]int

// RawAssessment is the unprocessed scoring result returned by the scorer for
// one entity snapshot.
type RawAssessment struct {
	Score           int
	Components      RiskComponents
	Trend           types.RiskTrend
	Confidence      int
	Recommendations []string
	Explanation     string
}

// Validate checks the raw assessment is usable as-is. An out-of-range score is
// an error here so the caller can substitute the documented default instead of
// the engine silently clamping.
func (r *RawAssessment) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return goerr.New("raw score out of range", goerr.V("score", r.Score))
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return goerr.New("confidence out of range", goerr.V("confidence", r.Confidence))
	}
	if err := r.Trend.Validate(); err != nil {
		return goerr.Wrap(err, "invalid trend")
	}
	for name, score := range r.Components {
		if score < 0 || score > 100 {
			return goerr.New("component score out of range",
				goerr.V("component", name), goerr.V("score", score))
		}
	}
	return nil
}

// RiskAssessment is the effective risk state of one entity: a frozen original
// score from the scorer combined with the entity's mitigation ledger.
//
// Invariants:
//   - Overall = max(0, OriginalScore - TotalRiskReduction)
//   - TotalRiskReduction = sum of applied reductions on the ledger
//   - MitigationApplied = (TotalRiskReduction > 0)
//   - OriginalScore is set once at first scoring and never changed by
//     mitigation edits.
type RiskAssessment struct {
	Overall            int             `json:"overall"`
	OriginalScore      int             `json:"originalScore"`
	Components         RiskComponents  `json:"components,omitempty"`
	Trend              types.RiskTrend `json:"trend"`
	Confidence         int             `json:"confidence"`
	Recommendations    []string        `json:"recommendations,omitempty"`
	Explanation        string          `json:"explanation,omitempty"`
	MitigationApplied  bool            `json:"mitigationApplied"`
	TotalRiskReduction int             `json:"totalRiskReduction"`
	LastUpdated        time.Time       `json:"lastUpdated"`
}

// NewRiskAssessment creates an assessment from a raw scoring result. The raw
// score must already be within [0,100]; callers substitute
// DefaultAssessment() when it is not.
func NewRiskAssessment(raw *RawAssessment, now time.Time) (*RiskAssessment, error) {
	if raw == nil {
		return nil, goerr.New("raw assessment is required")
	}
	if err := raw.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid raw assessment")
	}

	return &RiskAssessment{
		Overall:         raw.Score,
		OriginalScore:   raw.Score,
		Components:      raw.Components,
		Trend:           raw.Trend,
		Confidence:      raw.Confidence,
		Recommendations: raw.Recommendations,
		Explanation:     raw.Explanation,
		LastUpdated:     now,
	}, nil
}

// DefaultAssessment is the fallback used when scoring fails: the documented
// default score, stable trend, no confidence and no explanation. Entity
// creation must complete even when the scorer is fully unavailable.
func DefaultAssessment(now time.Time) *RiskAssessment {
	return &RiskAssessment{
		Overall:       DefaultRiskScore,
		OriginalScore: DefaultRiskScore,
		Trend:         types.RiskTrendStable,
		LastUpdated:   now,
	}
}

// RecomputeFromLedger re-derives the effective score from the frozen original
// score and the current ledger state. Idempotent: the formula never reads the
// previous Overall, so repeated recomputation cannot drift or compound.
func (a *RiskAssessment) RecomputeFromLedger(ledger *MitigationLedger, now time.Time) {
	total := ledger.TotalReduction()

	a.TotalRiskReduction = total
	a.Overall = a.OriginalScore - total
	if a.Overall < 0 {
		a.Overall = 0
	}
	a.MitigationApplied = total > 0
	a.LastUpdated = now
}

// Normalize backfills a missing OriginalScore from the current Overall. Legacy
// records stored before the original score was preserved carry only the
// effective score; treating it as the original exactly once keeps later
// recomputation from compounding reductions against an already-reduced number.
// It reports whether a backfill happened.
func (a *RiskAssessment) Normalize() bool {
	if a.OriginalScore > 0 || a.Overall == 0 {
		return false
	}
	a.OriginalScore = a.Overall
	return true
}
