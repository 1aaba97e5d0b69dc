package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type riskDocument struct {
	ID              int64      `firestore:"id"`
	Title           string     `firestore:"title"`
	Description     string     `firestore:"description"`
	Category        string     `firestore:"category"`
	Impact          string     `firestore:"impact"`
	Likelihood      string     `firestore:"likelihood"`
	Department      string     `firestore:"department"`
	MitigationPlan  string     `firestore:"mitigation_plan"`
	IsAIGenerated   bool       `firestore:"is_ai_generated"`
	AIConfidence    int        `firestore:"ai_confidence"`
	AIDetectionDate *time.Time `firestore:"ai_detection_date,omitempty"`

	SourceAssetID      string `firestore:"source_asset_id,omitempty"`
	SourcePersonnelID  string `firestore:"source_personnel_id,omitempty"`
	SourceIncidentID   string `firestore:"source_incident_id,omitempty"`
	SourceTravelPlanID string `firestore:"source_travel_plan_id,omitempty"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *riskRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("risk_counter")

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func toRiskDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		ID:                 risk.ID,
		Title:              risk.Title,
		Description:        risk.Description,
		Category:           risk.Category,
		Impact:             risk.Impact,
		Likelihood:         risk.Likelihood,
		Department:         risk.Department,
		MitigationPlan:     risk.MitigationPlan,
		IsAIGenerated:      risk.IsAIGenerated,
		AIConfidence:       risk.AIConfidence,
		AIDetectionDate:    risk.AIDetectionDate,
		SourceAssetID:      risk.SourceAssetID.String(),
		SourcePersonnelID:  risk.SourcePersonnelID.String(),
		SourceIncidentID:   risk.SourceIncidentID.String(),
		SourceTravelPlanID: risk.SourceTravelPlanID.String(),
		CreatedAt:          risk.CreatedAt,
		UpdatedAt:          risk.UpdatedAt,
	}
}

func fromRiskDocument(doc *riskDocument) *model.Risk {
	return &model.Risk{
		ID:                 doc.ID,
		Title:              doc.Title,
		Description:        doc.Description,
		Category:           doc.Category,
		Impact:             doc.Impact,
		Likelihood:         doc.Likelihood,
		Department:         doc.Department,
		MitigationPlan:     doc.MitigationPlan,
		IsAIGenerated:      doc.IsAIGenerated,
		AIConfidence:       doc.AIConfidence,
		AIDetectionDate:    doc.AIDetectionDate,
		SourceAssetID:      types.AssetID(doc.SourceAssetID),
		SourcePersonnelID:  types.PersonnelID(doc.SourcePersonnelID),
		SourceIncidentID:   types.IncidentID(doc.SourceIncidentID),
		SourceTravelPlanID: types.TravelPlanID(doc.SourceTravelPlanID),
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toRiskDocument(risk)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return fromRiskDocument(doc), nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	doc, err := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var risk riskDocument
	if err := doc.DataTo(&risk); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}

	return fromRiskDocument(&risk), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var risk riskDocument
		if err := doc.DataTo(&risk); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk")
		}

		risks = append(risks, fromRiskDocument(&risk))
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", risk.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", risk.ID))
	}

	var existing riskDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", risk.ID))
	}

	updated := toRiskDocument(risk)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return fromRiskDocument(updated), nil
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}

	return nil
}
