package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type incidentDocument struct {
	ID          string    `firestore:"id"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	Severity    string    `firestore:"severity"`
	Status      string    `firestore:"status"`
	Department  string    `firestore:"department"`
	OccurredAt  time.Time `firestore:"occurred_at"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

type incidentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newIncidentRepository(client *firestore.Client) *incidentRepository {
	return &incidentRepository{client: client}
}

func (r *incidentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_incidents"
	}
	return "incidents"
}

func toIncidentDocument(incident *model.Incident) *incidentDocument {
	return &incidentDocument{
		ID:          incident.ID.String(),
		Title:       incident.Title,
		Description: incident.Description,
		Severity:    incident.Severity,
		Status:      incident.Status,
		Department:  incident.Department,
		OccurredAt:  incident.OccurredAt,
		CreatedAt:   incident.CreatedAt,
		UpdatedAt:   incident.UpdatedAt,
	}
}

func fromIncidentDocument(doc *incidentDocument) *model.Incident {
	return &model.Incident{
		ID:          types.IncidentID(doc.ID),
		Title:       doc.Title,
		Description: doc.Description,
		Severity:    doc.Severity,
		Status:      doc.Status,
		Department:  doc.Department,
		OccurredAt:  doc.OccurredAt,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *incidentRepository) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	now := time.Now().UTC()
	doc := toIncidentDocument(incident)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create incident", goerr.V("id", incident.ID))
	}

	return fromIncidentDocument(doc), nil
}

func (r *incidentRepository) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}

	var incidentDoc incidentDocument
	if err := doc.DataTo(&incidentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal incident", goerr.V("id", id))
	}

	return fromIncidentDocument(&incidentDoc), nil
}

func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var incidents []*model.Incident
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate incidents")
		}

		var incidentDoc incidentDocument
		if err := doc.DataTo(&incidentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal incident")
		}

		incidents = append(incidents, fromIncidentDocument(&incidentDoc))
	}

	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	docRef := r.client.Collection(r.collection()).Doc(incident.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", incident.ID))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", incident.ID))
	}

	var existing incidentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal incident", goerr.V("id", incident.ID))
	}

	updated := toIncidentDocument(incident)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V("id", incident.ID))
	}

	return fromIncidentDocument(updated), nil
}

func (r *incidentRepository) Delete(ctx context.Context, id types.IncidentID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}

	return nil
}
