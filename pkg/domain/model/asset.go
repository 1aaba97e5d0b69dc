package model

import (
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// Asset is a monitored corporate asset (server, laptop, facility, service
// account). It carries its own embedded risk assessment and the mitigations
// applied to it.
type Asset struct {
	ID          types.AssetID       `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	AssetType   string              `json:"asset_type,omitempty"`
	Location    string              `json:"location,omitempty"`
	Owner       string              `json:"owner,omitempty"`
	Department  string              `json:"department,omitempty"`
	Assessment  *RiskAssessment     `json:"assessment,omitempty"`
	Mitigations []AppliedMitigation `json:"mitigations,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Ledger returns the asset's mitigations as a mutable ledger
func (a *Asset) Ledger() *MitigationLedger {
	return NewMitigationLedger(a.Mitigations)
}

// Snapshot builds the point-in-time view of the asset sent to the scorer
func (a *Asset) Snapshot() *EntitySnapshot {
	return &EntitySnapshot{
		Kind: types.EntityKindAsset,
		ID:   a.ID.String(),
		Attributes: map[string]any{
			"name":        a.Name,
			"description": a.Description,
			"asset_type":  a.AssetType,
			"location":    a.Location,
			"owner":       a.Owner,
			"department":  a.Department,
		},
	}
}
