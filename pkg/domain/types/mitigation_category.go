package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// MitigationCategory classifies which kind of entity a mitigation applies to.
// The "general" category is shared by all entity kinds.
type MitigationCategory string

const (
	MitigationCategoryPersonnel MitigationCategory = "personnel"
	MitigationCategoryAsset     MitigationCategory = "asset"
	MitigationCategoryTravel    MitigationCategory = "travel"
	MitigationCategoryGeneral   MitigationCategory = "general"
)

// Validate checks if the MitigationCategory is a known value
func (c MitigationCategory) Validate() error {
	switch c {
	case MitigationCategoryPersonnel, MitigationCategoryAsset, MitigationCategoryTravel, MitigationCategoryGeneral:
		return nil
	default:
		return goerr.New("invalid mitigation category", goerr.V("category", c))
	}
}

// String returns the string representation of MitigationCategory
func (c MitigationCategory) String() string {
	return string(c)
}
