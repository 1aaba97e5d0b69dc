package model

import (
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// Incident is a recorded security incident. Incidents feed the detection
// snapshot but do not carry a risk assessment of their own.
type Incident struct {
	ID          types.IncidentID `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Severity    string           `json:"severity,omitempty"`
	Status      string           `json:"status,omitempty"`
	Department  string           `json:"department,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
