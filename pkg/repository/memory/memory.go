package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is an in-memory repository for development and testing
type Memory struct {
	asset      *assetRepository
	personnel  *personnelRepository
	travel     *travelRepository
	incident   *incidentRepository
	risk       *riskRepository
	mitigation *mitigationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		asset:      newAssetRepository(),
		personnel:  newPersonnelRepository(),
		travel:     newTravelRepository(),
		incident:   newIncidentRepository(),
		risk:       newRiskRepository(),
		mitigation: newMitigationRepository(),
	}
}

func (m *Memory) Asset() interfaces.AssetRepository {
	return m.asset
}

func (m *Memory) Personnel() interfaces.PersonnelRepository {
	return m.personnel
}

func (m *Memory) Travel() interfaces.TravelRepository {
	return m.travel
}

func (m *Memory) Incident() interfaces.IncidentRepository {
	return m.incident
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Mitigation() interfaces.MitigationRepository {
	return m.mitigation
}

func (m *Memory) Close() error {
	return nil
}
