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

type travelPlanDocument struct {
	ID            string                    `firestore:"id"`
	PersonnelID   string                    `firestore:"personnel_id"`
	Destination   string                    `firestore:"destination"`
	Country       string                    `firestore:"country"`
	Purpose       string                    `firestore:"purpose"`
	DepartureDate time.Time                 `firestore:"departure_date"`
	ReturnDate    time.Time                 `firestore:"return_date"`
	Status        string                    `firestore:"status"`
	Assessment    *assessmentDocument       `firestore:"risk_assessment,omitempty"`
	Mitigations   []mitigationEntryDocument `firestore:"mitigations,omitempty"`
	CreatedAt     time.Time                 `firestore:"created_at"`
	UpdatedAt     time.Time                 `firestore:"updated_at"`
}

type travelRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTravelRepository(client *firestore.Client) *travelRepository {
	return &travelRepository{client: client}
}

func (r *travelRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_travel_plans"
	}
	return "travel_plans"
}

func toTravelPlanDocument(plan *model.TravelPlan) *travelPlanDocument {
	return &travelPlanDocument{
		ID:            plan.ID.String(),
		PersonnelID:   plan.PersonnelID.String(),
		Destination:   plan.Destination,
		Country:       plan.Country,
		Purpose:       plan.Purpose,
		DepartureDate: plan.DepartureDate,
		ReturnDate:    plan.ReturnDate,
		Status:        plan.Status,
		Assessment:    toAssessmentDocument(plan.Assessment),
		Mitigations:   toMitigationDocuments(plan.Mitigations),
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}
}

func fromTravelPlanDocument(doc *travelPlanDocument) *model.TravelPlan {
	return &model.TravelPlan{
		ID:            types.TravelPlanID(doc.ID),
		PersonnelID:   types.PersonnelID(doc.PersonnelID),
		Destination:   doc.Destination,
		Country:       doc.Country,
		Purpose:       doc.Purpose,
		DepartureDate: doc.DepartureDate,
		ReturnDate:    doc.ReturnDate,
		Status:        doc.Status,
		Assessment:    fromAssessmentDocument(doc.Assessment),
		Mitigations:   fromMitigationDocuments(doc.Mitigations),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func (r *travelRepository) Create(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error) {
	now := time.Now().UTC()
	doc := toTravelPlanDocument(plan)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create travel plan", goerr.V("id", plan.ID))
	}

	return fromTravelPlanDocument(doc), nil
}

func (r *travelRepository) Get(ctx context.Context, id types.TravelPlanID) (*model.TravelPlan, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "travel plan not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get travel plan", goerr.V("id", id))
	}

	var planDoc travelPlanDocument
	if err := doc.DataTo(&planDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal travel plan", goerr.V("id", id))
	}

	return fromTravelPlanDocument(&planDoc), nil
}

func (r *travelRepository) List(ctx context.Context) ([]*model.TravelPlan, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var plans []*model.TravelPlan
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate travel plans")
		}

		var planDoc travelPlanDocument
		if err := doc.DataTo(&planDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal travel plan")
		}

		plans = append(plans, fromTravelPlanDocument(&planDoc))
	}

	return plans, nil
}

func (r *travelRepository) Update(ctx context.Context, plan *model.TravelPlan) (*model.TravelPlan, error) {
	docRef := r.client.Collection(r.collection()).Doc(plan.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "travel plan not found", goerr.V("id", plan.ID))
		}
		return nil, goerr.Wrap(err, "failed to get travel plan", goerr.V("id", plan.ID))
	}

	var existing travelPlanDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal travel plan", goerr.V("id", plan.ID))
	}

	updated := toTravelPlanDocument(plan)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update travel plan", goerr.V("id", plan.ID))
	}

	return fromTravelPlanDocument(updated), nil
}

func (r *travelRepository) Delete(ctx context.Context, id types.TravelPlanID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "travel plan not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get travel plan", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete travel plan", goerr.V("id", id))
	}

	return nil
}
