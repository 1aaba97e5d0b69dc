package usecase

import (
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/service/catalog"
)

type UseCases struct {
	repo     interfaces.Repository
	scorer   interfaces.Scorer
	catalog  *catalog.Service
	archiver interfaces.Archiver
	notifier interfaces.Notifier

	orgID            string
	detectionEnabled bool

	Assessment *AssessmentUseCase
	Asset      *AssetUseCase
	Personnel  *PersonnelUseCase
	Travel     *TravelUseCase
	Incident   *IncidentUseCase
	Risk       *RiskUseCase
	Detection  *DetectionUseCase
}

type Option func(*UseCases)

func WithScorer(scorer interfaces.Scorer) Option {
	return func(uc *UseCases) {
		uc.scorer = scorer
	}
}

func WithCatalog(svc *catalog.Service) Option {
	return func(uc *UseCases) {
		uc.catalog = svc
	}
}

func WithArchiver(archiver interfaces.Archiver) Option {
	return func(uc *UseCases) {
		uc.archiver = archiver
	}
}

func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithOrganizationID(orgID string) Option {
	return func(uc *UseCases) {
		uc.orgID = orgID
	}
}

func WithDetectionEnabled(enabled bool) Option {
	return func(uc *UseCases) {
		uc.detectionEnabled = enabled
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.scorer, uc.catalog)
	uc.Asset = NewAssetUseCase(repo, uc.Assessment)
	uc.Personnel = NewPersonnelUseCase(repo, uc.Assessment)
	uc.Travel = NewTravelUseCase(repo, uc.Assessment)
	uc.Incident = NewIncidentUseCase(repo)
	uc.Risk = NewRiskUseCase(repo)
	uc.Detection = NewDetectionUseCase(repo, uc.scorer, uc.orgID,
		WithDetectionCapability(uc.detectionEnabled),
		WithDetectionArchiver(uc.archiver),
		WithDetectionNotifier(uc.notifier),
	)

	return uc
}

// Catalog exposes the mitigation catalog service to the controller layer
func (uc *UseCases) Catalog() *catalog.Service {
	return uc.catalog
}
