package memory

import (
	"maps"
	"slices"

	"github.com/secops-lab/panoptes/pkg/domain/model"
)

// Clone helpers return deep copies so callers can never mutate stored state.

func cloneAssessment(a *model.RiskAssessment) *model.RiskAssessment {
	if a == nil {
		return nil
	}
	c := *a
	if a.Components != nil {
		c.Components = maps.Clone(a.Components)
	}
	c.Recommendations = slices.Clone(a.Recommendations)
	return &c
}

func cloneAsset(a *model.Asset) *model.Asset {
	c := *a
	c.Assessment = cloneAssessment(a.Assessment)
	c.Mitigations = slices.Clone(a.Mitigations)
	return &c
}

func clonePersonnel(p *model.Personnel) *model.Personnel {
	c := *p
	c.Assessment = cloneAssessment(p.Assessment)
	c.Mitigations = slices.Clone(p.Mitigations)
	return &c
}

func cloneTravelPlan(p *model.TravelPlan) *model.TravelPlan {
	c := *p
	c.Assessment = cloneAssessment(p.Assessment)
	c.Mitigations = slices.Clone(p.Mitigations)
	return &c
}

func cloneIncident(i *model.Incident) *model.Incident {
	c := *i
	return &c
}

func cloneRisk(r *model.Risk) *model.Risk {
	c := *r
	if r.AIDetectionDate != nil {
		d := *r.AIDetectionDate
		c.AIDetectionDate = &d
	}
	return &c
}

func cloneDefinition(d *model.MitigationDefinition) *model.MitigationDefinition {
	c := *d
	return &c
}
