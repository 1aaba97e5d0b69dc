package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type mitigationDocument struct {
	ID               string `firestore:"id"`
	Name             string `firestore:"name"`
	Description      string `firestore:"description"`
	Category         string `firestore:"category"`
	DefaultReduction int    `firestore:"default_reduction"`
	IsCustom         bool   `firestore:"is_custom"`
}

type mitigationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMitigationRepository(client *firestore.Client) *mitigationRepository {
	return &mitigationRepository{client: client}
}

func (r *mitigationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_mitigations"
	}
	return "mitigations"
}

func toMitigationDocument(def *model.MitigationDefinition) *mitigationDocument {
	return &mitigationDocument{
		ID:               def.ID.String(),
		Name:             def.Name,
		Description:      def.Description,
		Category:         def.Category.String(),
		DefaultReduction: def.DefaultReduction,
		IsCustom:         def.IsCustom,
	}
}

func fromMitigationDocument(doc *mitigationDocument) *model.MitigationDefinition {
	return &model.MitigationDefinition{
		ID:               types.MitigationID(doc.ID),
		Name:             doc.Name,
		Description:      doc.Description,
		Category:         types.MitigationCategory(doc.Category),
		DefaultReduction: doc.DefaultReduction,
		IsCustom:         doc.IsCustom,
	}
}

func (r *mitigationRepository) Create(ctx context.Context, def *model.MitigationDefinition) (*model.MitigationDefinition, error) {
	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mitigation definition")
	}

	doc := toMitigationDocument(def)
	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create mitigation definition", goerr.V("id", def.ID))
	}

	return fromMitigationDocument(doc), nil
}

func (r *mitigationRepository) Get(ctx context.Context, id types.MitigationID) (*model.MitigationDefinition, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "mitigation definition not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get mitigation definition", goerr.V("id", id))
	}

	var def mitigationDocument
	if err := doc.DataTo(&def); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal mitigation definition", goerr.V("id", id))
	}

	return fromMitigationDocument(&def), nil
}

func (r *mitigationRepository) List(ctx context.Context) ([]*model.MitigationDefinition, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var defs []*model.MitigationDefinition
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate mitigation definitions")
		}

		var def mitigationDocument
		if err := doc.DataTo(&def); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal mitigation definition")
		}

		defs = append(defs, fromMitigationDocument(&def))
	}

	return defs, nil
}

func (r *mitigationRepository) Delete(ctx context.Context, id types.MitigationID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "mitigation definition not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get mitigation definition", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete mitigation definition", goerr.V("id", id))
	}

	return nil
}
