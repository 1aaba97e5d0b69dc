package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

type Firestore struct {
	client     *firestore.Client
	asset      *assetRepository
	personnel  *personnelRepository
	travel     *travelRepository
	incident   *incidentRepository
	risk       *riskRepository
	mitigation *mitigationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.asset.collectionPrefix = prefix
		f.personnel.collectionPrefix = prefix
		f.travel.collectionPrefix = prefix
		f.incident.collectionPrefix = prefix
		f.risk.collectionPrefix = prefix
		f.mitigation.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:     client,
		asset:      newAssetRepository(client),
		personnel:  newPersonnelRepository(client),
		travel:     newTravelRepository(client),
		incident:   newIncidentRepository(client),
		risk:       newRiskRepository(client),
		mitigation: newMitigationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Asset() interfaces.AssetRepository {
	return f.asset
}

func (f *Firestore) Personnel() interfaces.PersonnelRepository {
	return f.personnel
}

func (f *Firestore) Travel() interfaces.TravelRepository {
	return f.travel
}

func (f *Firestore) Incident() interfaces.IncidentRepository {
	return f.incident
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Mitigation() interfaces.MitigationRepository {
	return f.mitigation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
