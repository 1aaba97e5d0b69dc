package model

import (
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// Personnel is a tracked member of the organization
type Personnel struct {
	ID             types.PersonnelID   `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email,omitempty"`
	Role           string              `json:"role,omitempty"`
	Department     string              `json:"department,omitempty"`
	Location       string              `json:"location,omitempty"`
	ClearanceLevel string              `json:"clearance_level,omitempty"`
	Assessment     *RiskAssessment     `json:"assessment,omitempty"`
	Mitigations    []AppliedMitigation `json:"mitigations,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Ledger returns the personnel record's mitigations as a mutable ledger
func (p *Personnel) Ledger() *MitigationLedger {
	return NewMitigationLedger(p.Mitigations)
}

// Snapshot builds the point-in-time view of the personnel record sent to the scorer
func (p *Personnel) Snapshot() *EntitySnapshot {
	return &EntitySnapshot{
		Kind: types.EntityKindPersonnel,
		ID:   p.ID.String(),
		Attributes: map[string]any{
			"name":            p.Name,
			"role":            p.Role,
			"department":      p.Department,
			"location":        p.Location,
			"clearance_level": p.ClearanceLevel,
		},
	}
}
