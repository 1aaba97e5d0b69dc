package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrDetectionDisabled is returned when AI risk detection is not enabled
	// for the organization
	ErrDetectionDisabled = goerr.New("AI risk detection is disabled")

	// ErrStagingNotFound is returned when confirming against a staging ID
	// that does not match the current staged batch
	ErrStagingNotFound = goerr.New("staged detection batch not found")

	// ErrUnsupportedEntityKind is returned for mitigation operations on a
	// kind that does not carry an assessment
	ErrUnsupportedEntityKind = goerr.New("entity kind does not support mitigations")
)
