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

type assetDocument struct {
	ID          string                    `firestore:"id"`
	Name        string                    `firestore:"name"`
	Description string                    `firestore:"description"`
	AssetType   string                    `firestore:"asset_type"`
	Location    string                    `firestore:"location"`
	Owner       string                    `firestore:"owner"`
	Department  string                    `firestore:"department"`
	Assessment  *assessmentDocument       `firestore:"risk_assessment,omitempty"`
	Mitigations []mitigationEntryDocument `firestore:"mitigations,omitempty"`
	CreatedAt   time.Time                 `firestore:"created_at"`
	UpdatedAt   time.Time                 `firestore:"updated_at"`
}

type assetRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssetRepository(client *firestore.Client) *assetRepository {
	return &assetRepository{client: client}
}

func (r *assetRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assets"
	}
	return "assets"
}

func toAssetDocument(asset *model.Asset) *assetDocument {
	return &assetDocument{
		ID:          asset.ID.String(),
		Name:        asset.Name,
		Description: asset.Description,
		AssetType:   asset.AssetType,
		Location:    asset.Location,
		Owner:       asset.Owner,
		Department:  asset.Department,
		Assessment:  toAssessmentDocument(asset.Assessment),
		Mitigations: toMitigationDocuments(asset.Mitigations),
		CreatedAt:   asset.CreatedAt,
		UpdatedAt:   asset.UpdatedAt,
	}
}

func fromAssetDocument(doc *assetDocument) *model.Asset {
	return &model.Asset{
		ID:          types.AssetID(doc.ID),
		Name:        doc.Name,
		Description: doc.Description,
		AssetType:   doc.AssetType,
		Location:    doc.Location,
		Owner:       doc.Owner,
		Department:  doc.Department,
		Assessment:  fromAssessmentDocument(doc.Assessment),
		Mitigations: fromMitigationDocuments(doc.Mitigations),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	now := time.Now().UTC()
	doc := toAssetDocument(asset)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create asset", goerr.V("id", asset.ID))
	}

	return fromAssetDocument(doc), nil
}

func (r *assetRepository) Get(ctx context.Context, id types.AssetID) (*model.Asset, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get asset", goerr.V("id", id))
	}

	var assetDoc assetDocument
	if err := doc.DataTo(&assetDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal asset", goerr.V("id", id))
	}

	return fromAssetDocument(&assetDoc), nil
}

func (r *assetRepository) List(ctx context.Context) ([]*model.Asset, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var assets []*model.Asset
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assets")
		}

		var assetDoc assetDocument
		if err := doc.DataTo(&assetDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal asset")
		}

		assets = append(assets, fromAssetDocument(&assetDoc))
	}

	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	docRef := r.client.Collection(r.collection()).Doc(asset.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", asset.ID))
		}
		return nil, goerr.Wrap(err, "failed to get asset", goerr.V("id", asset.ID))
	}

	var existing assetDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal asset", goerr.V("id", asset.ID))
	}

	updated := toAssetDocument(asset)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update asset", goerr.V("id", asset.ID))
	}

	return fromAssetDocument(updated), nil
}

func (r *assetRepository) Delete(ctx context.Context, id types.AssetID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get asset", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete asset", goerr.V("id", id))
	}

	return nil
}
