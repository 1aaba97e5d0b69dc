package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// EntityKind identifies the kind of record that carries a risk assessment
type EntityKind string

const (
	EntityKindAsset     EntityKind = "asset"
	EntityKindPersonnel EntityKind = "personnel"
	EntityKindTravel    EntityKind = "travel"
	EntityKindIncident  EntityKind = "incident"
)

// Validate checks if the EntityKind is a known value
func (k EntityKind) Validate() error {
	switch k {
	case EntityKindAsset, EntityKindPersonnel, EntityKindTravel, EntityKindIncident:
		return nil
	default:
		return goerr.New("invalid entity kind", goerr.V("kind", k))
	}
}

// String returns the string representation of EntityKind
func (k EntityKind) String() string {
	return string(k)
}
