package model

import (
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// EntitySnapshot is the point-in-time view of one entity sent to the scorer
// for per-entity scoring.
type EntitySnapshot struct {
	Kind       types.EntityKind `json:"kind"`
	ID         string           `json:"id"`
	Attributes map[string]any   `json:"attributes"`
}

// OrgSnapshot is the organization-wide data set fed to the scorer for risk
// detection: all entities plus the existing register, so the scorer can avoid
// proposing risks that are already tracked.
type OrgSnapshot struct {
	Assets      []*Asset
	Personnel   []*Personnel
	TravelPlans []*TravelPlan
	Incidents   []*Incident
	Risks       []*Risk
}

// Empty reports whether the snapshot holds no entities at all
func (s *OrgSnapshot) Empty() bool {
	return len(s.Assets) == 0 && len(s.Personnel) == 0 &&
		len(s.TravelPlans) == 0 && len(s.Incidents) == 0
}
