package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Asset() AssetRepository
	Personnel() PersonnelRepository
	Travel() TravelRepository
	Incident() IncidentRepository
	Risk() RiskRepository
	Mitigation() MitigationRepository

	Close() error
}
