package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RiskSourceType identifies what kind of record an AI-detected risk originated
// from. "pattern" means the risk was derived from a cross-entity pattern and has
// no single source record.
type RiskSourceType string

const (
	RiskSourceAsset     RiskSourceType = "asset"
	RiskSourcePersonnel RiskSourceType = "personnel"
	RiskSourceIncident  RiskSourceType = "incident"
	RiskSourceTravel    RiskSourceType = "travel"
	RiskSourcePattern   RiskSourceType = "pattern"
)

// Validate checks if the RiskSourceType is a known value
func (s RiskSourceType) Validate() error {
	switch s {
	case RiskSourceAsset, RiskSourcePersonnel, RiskSourceIncident, RiskSourceTravel, RiskSourcePattern:
		return nil
	default:
		return goerr.New("invalid risk source type", goerr.V("source_type", s))
	}
}

// String returns the string representation of RiskSourceType
func (s RiskSourceType) String() string {
	return string(s)
}
