package scorer

import (
	"github.com/m-mizutani/gollem"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func scoreResponseSchema(kind types.EntityKind) *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "RiskScoreResponse",
		Description: "Risk assessment of one " + kind.String() + " record",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"score": {
				Type:        gollem.TypeInteger,
				Description: "Overall risk score between 0 and 100",
			},
			"components": {
				Type:        gollem.TypeArray,
				Description: "Named component scores contributing to the overall score",
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"name": {
							Type:        gollem.TypeString,
							Description: "Component name, e.g. exposure or patching",
						},
						"score": {
							Type:        gollem.TypeInteger,
							Description: "Component score between 0 and 100",
						},
					},
					Required: []string{"name", "score"},
				},
			},
			"trend": {
				Type:        gollem.TypeString,
				Description: "One of: improving, stable, deteriorating",
			},
			"confidence": {
				Type:        gollem.TypeInteger,
				Description: "Confidence in the assessment between 0 and 100",
			},
			"recommendations": {
				Type:        gollem.TypeArray,
				Description: "Actionable recommendations to reduce the risk",
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
			},
			"explanation": {
				Type:        gollem.TypeString,
				Description: "Short explanation of the main score drivers",
			},
		},
		Required: []string{"score", "trend", "confidence"},
	}
}

func detectResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "RiskDetectionResponse",
		Description: "Candidate risk register entries detected from the organization snapshot",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"risks": {
				Type:        gollem.TypeArray,
				Description: "Detected risks not already in the register",
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"title": {
							Type:        gollem.TypeString,
							Description: "Concise risk title",
						},
						"description": {
							Type:        gollem.TypeString,
							Description: "What the risk is and why it matters",
						},
						"category": {
							Type:        gollem.TypeString,
							Description: "Risk category, e.g. personnel, asset, travel, compliance",
						},
						"impact": {
							Type:        gollem.TypeString,
							Description: "One of: low, medium, high, critical",
						},
						"likelihood": {
							Type:        gollem.TypeString,
							Description: "One of: low, medium, high, critical",
						},
						"confidence": {
							Type:        gollem.TypeInteger,
							Description: "Detection confidence between 0 and 100",
						},
						"source_type": {
							Type:        gollem.TypeString,
							Description: "One of: asset, personnel, incident, travel, pattern",
						},
						"source_id": {
							Type:        gollem.TypeString,
							Description: "ID of the source record; empty for pattern detections",
						},
						"department": {
							Type:        gollem.TypeString,
							Description: "Department the risk belongs to",
						},
						"recommendations": {
							Type:        gollem.TypeArray,
							Description: "Concrete recommendations to mitigate the risk",
							Items: &gollem.Parameter{
								Type: gollem.TypeString,
							},
						},
					},
					Required: []string{"title", "description", "confidence", "source_type"},
				},
			},
		},
		Required: []string{"risks"},
	}
}
