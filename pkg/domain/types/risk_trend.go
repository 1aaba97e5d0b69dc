package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RiskTrend represents the direction an entity's risk posture is moving
type RiskTrend string

const (
	RiskTrendImproving     RiskTrend = "improving"
	RiskTrendStable        RiskTrend = "stable"
	RiskTrendDeteriorating RiskTrend = "deteriorating"
)

// Validate checks if the RiskTrend is a known value
func (t RiskTrend) Validate() error {
	switch t {
	case RiskTrendImproving, RiskTrendStable, RiskTrendDeteriorating:
		return nil
	default:
		return goerr.New("invalid risk trend", goerr.V("trend", t))
	}
}

// String returns the string representation of RiskTrend
func (t RiskTrend) String() string {
	return string(t)
}
