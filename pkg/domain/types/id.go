package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// AssetID is a unique identifier of an asset record
type AssetID string

// PersonnelID is a unique identifier of a personnel record
type PersonnelID string

// TravelPlanID is a unique identifier of a travel plan record
type TravelPlanID string

// IncidentID is a unique identifier of an incident record
type IncidentID string

// MitigationID is a unique identifier of a mitigation definition
type MitigationID string

// StagingID identifies one staged batch of detected risk candidates
type StagingID string

func NewAssetID() AssetID           { return AssetID(uuid.Must(uuid.NewV7()).String()) }
func NewPersonnelID() PersonnelID   { return PersonnelID(uuid.Must(uuid.NewV7()).String()) }
func NewTravelPlanID() TravelPlanID { return TravelPlanID(uuid.Must(uuid.NewV7()).String()) }
func NewIncidentID() IncidentID     { return IncidentID(uuid.Must(uuid.NewV7()).String()) }
func NewMitigationID() MitigationID { return MitigationID(uuid.Must(uuid.NewV7()).String()) }
func NewStagingID() StagingID       { return StagingID(uuid.Must(uuid.NewV7()).String()) }

func (x AssetID) String() string      { return string(x) }
func (x PersonnelID) String() string  { return string(x) }
func (x TravelPlanID) String() string { return string(x) }
func (x IncidentID) String() string   { return string(x) }
func (x MitigationID) String() string { return string(x) }
func (x StagingID) String() string    { return string(x) }

func validateUUID(name, v string) error {
	if v == "" {
		return goerr.New(name + " cannot be empty")
	}
	if _, err := uuid.Parse(v); err != nil {
		return goerr.Wrap(err, "invalid "+name, goerr.V("id", v))
	}
	return nil
}

func (x AssetID) Validate() error      { return validateUUID("asset ID", string(x)) }
func (x PersonnelID) Validate() error  { return validateUUID("personnel ID", string(x)) }
func (x TravelPlanID) Validate() error { return validateUUID("travel plan ID", string(x)) }
func (x IncidentID) Validate() error   { return validateUUID("incident ID", string(x)) }
func (x MitigationID) Validate() error { return validateUUID("mitigation ID", string(x)) }
