package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the mitigation ledger
var (
	ErrDuplicateMitigation = goerr.New("mitigation is already applied to this entity")
	ErrMitigationNotFound  = goerr.New("mitigation is not applied to this entity")
)
