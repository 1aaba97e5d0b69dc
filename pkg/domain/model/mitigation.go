package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// MitigationDefinition is an available mitigation that can be applied to an
// entity. Definitions are seeded from configuration or created by users
// (IsCustom). Applying a definition copies its fields into an
// AppliedMitigation, so later edits to a definition never change reductions
// that are already applied.
type MitigationDefinition struct {
	ID               types.MitigationID       `json:"id"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description,omitempty"`
	Category         types.MitigationCategory `json:"category"`
	DefaultReduction int                      `json:"default_reduction"`
	IsCustom         bool                     `json:"is_custom"`
}

// Validate checks if the MitigationDefinition is valid
func (d *MitigationDefinition) Validate() error {
	if d.Name == "" {
		return goerr.New("mitigation name is required")
	}
	if err := d.Category.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation category")
	}
	if d.DefaultReduction < 0 || d.DefaultReduction > 100 {
		return goerr.New("mitigation default reduction must be between 0 and 100",
			goerr.V("id", d.ID), goerr.V("reduction", d.DefaultReduction))
	}
	return nil
}

// AppliedMitigation is a snapshot copy of a definition at the time it was
// applied to an entity, plus the possibly-edited reduction value and notes.
type AppliedMitigation struct {
	MitigationID     types.MitigationID       `json:"mitigation_id"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	Category         types.MitigationCategory `json:"category"`
	AppliedReduction int                      `json:"applied_reduction"`
	Notes            string                   `json:"notes,omitempty"`
	AppliedBy        string                   `json:"applied_by"`
	AppliedAt        time.Time                `json:"applied_at"`
}

// MitigationPatch updates selected fields of an applied mitigation. Nil fields
// are left unchanged.
type MitigationPatch struct {
	AppliedReduction *int
	Notes            *string
}

// MitigationLedger is the ordered collection of mitigations applied to exactly
// one entity. Order is insertion order. The ledger never clamps: reductions
// summing above 100 are the assessment's problem, not the ledger's.
type MitigationLedger struct {
	entries []AppliedMitigation
}

// NewMitigationLedger creates a ledger from already-applied entries, e.g. when
// loading an entity from the repository.
func NewMitigationLedger(entries []AppliedMitigation) *MitigationLedger {
	ledger := &MitigationLedger{}
	ledger.entries = append(ledger.entries, entries...)
	return ledger
}

// Add appends a snapshot of the definition with its default reduction. Adding
// a definition whose ID is already present fails with ErrDuplicateMitigation
// and leaves the ledger unchanged.
func (x *MitigationLedger) Add(def *MitigationDefinition, actor string, now time.Time) error {
	if err := def.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation definition")
	}

	for _, e := range x.entries {
		if e.MitigationID == def.ID {
			return goerr.Wrap(ErrDuplicateMitigation, "duplicate mitigation", goerr.V("id", def.ID))
		}
	}

	x.entries = append(x.entries, AppliedMitigation{
		MitigationID:     def.ID,
		Name:             def.Name,
		Description:      def.Description,
		Category:         def.Category,
		AppliedReduction: def.DefaultReduction,
		AppliedBy:        actor,
		AppliedAt:        now,
	})

	return nil
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// no-op, not an error: callers may race against a concurrent edit UI.
func (x *MitigationLedger) Remove(id types.MitigationID) {
	for i, e := range x.entries {
		if e.MitigationID == id {
			x.entries = append(x.entries[:i], x.entries[i+1:]...)
			return
		}
	}
}

// Update replaces only the supplied fields of an applied mitigation,
// preserving AppliedBy and AppliedAt of the original application. It fails
// with ErrMitigationNotFound if the ID is absent.
func (x *MitigationLedger) Update(id types.MitigationID, patch MitigationPatch) error {
	for i := range x.entries {
		if x.entries[i].MitigationID != id {
			continue
		}
		if patch.AppliedReduction != nil {
			if *patch.AppliedReduction < 0 || *patch.AppliedReduction > 100 {
				return goerr.New("applied reduction must be between 0 and 100",
					goerr.V("id", id), goerr.V("reduction", *patch.AppliedReduction))
			}
			x.entries[i].AppliedReduction = *patch.AppliedReduction
		}
		if patch.Notes != nil {
			x.entries[i].Notes = *patch.Notes
		}
		return nil
	}

	return goerr.Wrap(ErrMitigationNotFound, "mitigation not found", goerr.V("id", id))
}

// TotalReduction returns the plain sum of applied reductions. An empty ledger
// yields 0. Sums above 100 are returned as-is.
func (x *MitigationLedger) TotalReduction() int {
	total := 0
	for _, e := range x.entries {
		total += e.AppliedReduction
	}
	return total
}

// Entries returns a copy of the applied mitigations in insertion order
func (x *MitigationLedger) Entries() []AppliedMitigation {
	entries := make([]AppliedMitigation, len(x.entries))
	copy(entries, x.entries)
	return entries
}

// Len returns the number of applied mitigations
func (x *MitigationLedger) Len() int {
	return len(x.entries)
}
