package model

import (
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// TravelPlan is a personnel travel itinerary pending risk approval
type TravelPlan struct {
	ID            types.TravelPlanID  `json:"id"`
	PersonnelID   types.PersonnelID   `json:"personnel_id"`
	Destination   string              `json:"destination"`
	Country       string              `json:"country,omitempty"`
	Purpose       string              `json:"purpose,omitempty"`
	DepartureDate time.Time           `json:"departure_date"`
	ReturnDate    time.Time           `json:"return_date"`
	Status        string              `json:"status,omitempty"`
	Assessment    *RiskAssessment     `json:"assessment,omitempty"`
	Mitigations   []AppliedMitigation `json:"mitigations,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Ledger returns the travel plan's mitigations as a mutable ledger
func (p *TravelPlan) Ledger() *MitigationLedger {
	return NewMitigationLedger(p.Mitigations)
}

// Snapshot builds the point-in-time view of the travel plan sent to the scorer
func (p *TravelPlan) Snapshot() *EntitySnapshot {
	return &EntitySnapshot{
		Kind: types.EntityKindTravel,
		ID:   p.ID.String(),
		Attributes: map[string]any{
			"personnel_id":   p.PersonnelID.String(),
			"destination":    p.Destination,
			"country":        p.Country,
			"purpose":        p.Purpose,
			"departure_date": p.DepartureDate.Format(time.RFC3339),
			"return_date":    p.ReturnDate.Format(time.RFC3339),
		},
	}
}
