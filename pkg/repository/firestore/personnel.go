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

type personnelDocument struct {
	ID             string                    `firestore:"id"`
	Name           string                    `firestore:"name"`
	Email          string                    `firestore:"email"`
	Role           string                    `firestore:"role"`
	Department     string                    `firestore:"department"`
	Location       string                    `firestore:"location"`
	ClearanceLevel string                    `firestore:"clearance_level"`
	Assessment     *assessmentDocument       `firestore:"risk_assessment,omitempty"`
	Mitigations    []mitigationEntryDocument `firestore:"mitigations,omitempty"`
	CreatedAt      time.Time                 `firestore:"created_at"`
	UpdatedAt      time.Time                 `firestore:"updated_at"`
}

type personnelRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPersonnelRepository(client *firestore.Client) *personnelRepository {
	return &personnelRepository{client: client}
}

func (r *personnelRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_personnel"
	}
	return "personnel"
}

func toPersonnelDocument(person *model.Personnel) *personnelDocument {
	return &personnelDocument{
		ID:             person.ID.String(),
		Name:           person.Name,
		Email:          person.Email,
		Role:           person.Role,
		Department:     person.Department,
		Location:       person.Location,
		ClearanceLevel: person.ClearanceLevel,
		Assessment:     toAssessmentDocument(person.Assessment),
		Mitigations:    toMitigationDocuments(person.Mitigations),
		CreatedAt:      person.CreatedAt,
		UpdatedAt:      person.UpdatedAt,
	}
}

func fromPersonnelDocument(doc *personnelDocument) *model.Personnel {
	return &model.Personnel{
		ID:             types.PersonnelID(doc.ID),
		Name:           doc.Name,
		Email:          doc.Email,
		Role:           doc.Role,
		Department:     doc.Department,
		Location:       doc.Location,
		ClearanceLevel: doc.ClearanceLevel,
		Assessment:     fromAssessmentDocument(doc.Assessment),
		Mitigations:    fromMitigationDocuments(doc.Mitigations),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func (r *personnelRepository) Create(ctx context.Context, person *model.Personnel) (*model.Personnel, error) {
	now := time.Now().UTC()
	doc := toPersonnelDocument(person)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create personnel", goerr.V("id", person.ID))
	}

	return fromPersonnelDocument(doc), nil
}

func (r *personnelRepository) Get(ctx context.Context, id types.PersonnelID) (*model.Personnel, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "personnel not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get personnel", goerr.V("id", id))
	}

	var personDoc personnelDocument
	if err := doc.DataTo(&personDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal personnel", goerr.V("id", id))
	}

	return fromPersonnelDocument(&personDoc), nil
}

func (r *personnelRepository) List(ctx context.Context) ([]*model.Personnel, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var records []*model.Personnel
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate personnel")
		}

		var personDoc personnelDocument
		if err := doc.DataTo(&personDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal personnel")
		}

		records = append(records, fromPersonnelDocument(&personDoc))
	}

	return records, nil
}

func (r *personnelRepository) Update(ctx context.Context, person *model.Personnel) (*model.Personnel, error) {
	docRef := r.client.Collection(r.collection()).Doc(person.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "personnel not found", goerr.V("id", person.ID))
		}
		return nil, goerr.Wrap(err, "failed to get personnel", goerr.V("id", person.ID))
	}

	var existing personnelDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal personnel", goerr.V("id", person.ID))
	}

	updated := toPersonnelDocument(person)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update personnel", goerr.V("id", person.ID))
	}

	return fromPersonnelDocument(updated), nil
}

func (r *personnelRepository) Delete(ctx context.Context, id types.PersonnelID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "personnel not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get personnel", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete personnel", goerr.V("id", id))
	}

	return nil
}
