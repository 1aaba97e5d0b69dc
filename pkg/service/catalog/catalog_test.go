package catalog_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/repository/memory"
	"github.com/secops-lab/panoptes/pkg/service/catalog"
)

func seedDefs() []*model.MitigationDefinition {
	return []*model.MitigationDefinition{
		{
			ID:               types.NewMitigationID(),
			Name:             "Security awareness training",
			Category:         types.MitigationCategoryPersonnel,
			DefaultReduction: 10,
		},
		{
			ID:               types.NewMitigationID(),
			Name:             "Full disk encryption",
			Category:         types.MitigationCategoryAsset,
			DefaultReduction: 20,
		},
		{
			ID:               types.NewMitigationID(),
			Name:             "Incident response plan",
			Category:         types.MitigationCategoryGeneral,
			DefaultReduction: 5,
		},
	}
}

func TestCatalogList(t *testing.T) {
	ctx := context.Background()

	t.Run("category filter includes general", func(t *testing.T) {
		svc, err := catalog.New(memory.New().Mitigation(), seedDefs())
		gt.NoError(t, err).Required()

		defs, err := svc.List(ctx, types.MitigationCategoryAsset)
		gt.NoError(t, err).Required()
		gt.Array(t, defs).Length(2)
		for _, def := range defs {
			ok := def.Category == types.MitigationCategoryAsset ||
				def.Category == types.MitigationCategoryGeneral
			gt.Bool(t, ok).True()
		}
	})

	t.Run("empty category returns full catalog", func(t *testing.T) {
		svc, err := catalog.New(memory.New().Mitigation(), seedDefs())
		gt.NoError(t, err).Required()

		defs, err := svc.List(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, defs).Length(3)
	})

	t.Run("custom definitions are merged with seeded ones", func(t *testing.T) {
		repo := memory.New().Mitigation()
		svc, err := catalog.New(repo, seedDefs())
		gt.NoError(t, err).Required()

		created, err := svc.CreateCustom(ctx, "Travel tracker enrollment", "Enroll traveler in tracking", types.MitigationCategoryTravel, 15)
		gt.NoError(t, err).Required()
		gt.Bool(t, created.IsCustom).True()
		gt.Value(t, created.ID).NotEqual(types.MitigationID(""))

		defs, err := svc.List(ctx, types.MitigationCategoryTravel)
		gt.NoError(t, err).Required()
		// custom travel definition plus the seeded general one
		gt.Array(t, defs).Length(2)
	})
}

func TestCatalogCreateCustom(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects out-of-range reduction", func(t *testing.T) {
		svc, err := catalog.New(memory.New().Mitigation(), nil)
		gt.NoError(t, err).Required()

		_, err = svc.CreateCustom(ctx, "Too strong", "", types.MitigationCategoryGeneral, 120)
		gt.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, err := catalog.New(memory.New().Mitigation(), nil)
		gt.NoError(t, err).Required()

		_, err = svc.CreateCustom(ctx, "", "", types.MitigationCategoryGeneral, 10)
		gt.Error(t, err)
	})
}

func TestCatalogGet(t *testing.T) {
	ctx := context.Background()

	seeds := seedDefs()
	svc, err := catalog.New(memory.New().Mitigation(), seeds)
	gt.NoError(t, err).Required()

	t.Run("finds seeded definition", func(t *testing.T) {
		def, err := svc.Get(ctx, seeds[0].ID)
		gt.NoError(t, err).Required()
		gt.Value(t, def.Name).Equal(seeds[0].Name)
	})

	t.Run("unknown ID is an error", func(t *testing.T) {
		_, err := svc.Get(ctx, types.NewMitigationID())
		gt.Error(t, err)
	})
}

func TestCatalogDeleteCustom(t *testing.T) {
	ctx := context.Background()

	seeds := seedDefs()
	svc, err := catalog.New(memory.New().Mitigation(), seeds)
	gt.NoError(t, err).Required()

	t.Run("seeded definitions cannot be deleted", func(t *testing.T) {
		gt.Error(t, svc.DeleteCustom(ctx, seeds[0].ID))
	})

	t.Run("custom definitions can be deleted", func(t *testing.T) {
		created, err := svc.CreateCustom(ctx, "Temporary", "", types.MitigationCategoryGeneral, 5)
		gt.NoError(t, err).Required()

		gt.NoError(t, svc.DeleteCustom(ctx, created.ID))

		_, err = svc.Get(ctx, created.ID)
		gt.Error(t, err)
	})
}

func TestCatalogNew(t *testing.T) {
	t.Run("invalid seeded definition fails at startup", func(t *testing.T) {
		_, err := catalog.New(memory.New().Mitigation(), []*model.MitigationDefinition{
			{ID: types.NewMitigationID(), Name: "Broken", Category: "unknown", DefaultReduction: 10},
		})
		gt.Error(t, err)
	})

	t.Run("duplicate seeded IDs fail at startup", func(t *testing.T) {
		id := types.NewMitigationID()
		_, err := catalog.New(memory.New().Mitigation(), []*model.MitigationDefinition{
			{ID: id, Name: "One", Category: types.MitigationCategoryGeneral, DefaultReduction: 10},
			{ID: id, Name: "Two", Category: types.MitigationCategoryGeneral, DefaultReduction: 10},
		})
		gt.Error(t, err)
	})
}
