package catalog

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// Service merges the seeded mitigation catalog from configuration with
// user-created definitions persisted in the repository. Seeded definitions are
// read-only; custom ones can be created and deleted at runtime.
type Service struct {
	repo   interfaces.MitigationRepository
	seeded []*model.MitigationDefinition
}

// New creates a catalog service. Seeded definitions are validated up front so
// a broken catalog in configuration fails at startup, not on first use.
func New(repo interfaces.MitigationRepository, seeded []*model.MitigationDefinition) (*Service, error) {
	if repo == nil {
		return nil, goerr.New("mitigation repository is required")
	}

	seen := map[types.MitigationID]struct{}{}
	for _, def := range seeded {
		if err := def.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid seeded mitigation definition", goerr.V("id", def.ID))
		}
		if _, ok := seen[def.ID]; ok {
			return nil, goerr.New("duplicate seeded mitigation definition", goerr.V("id", def.ID))
		}
		seen[def.ID] = struct{}{}
	}

	return &Service{
		repo:   repo,
		seeded: seeded,
	}, nil
}

// List returns all definitions applicable to the given category: the category
// itself plus "general". An empty category returns the full catalog.
func (s *Service) List(ctx context.Context, category types.MitigationCategory) ([]*model.MitigationDefinition, error) {
	custom, err := s.repo.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list custom mitigation definitions")
	}

	var defs []*model.MitigationDefinition
	for _, def := range s.seeded {
		if matches(def.Category, category) {
			copied := *def
			defs = append(defs, &copied)
		}
	}
	for _, def := range custom {
		if matches(def.Category, category) {
			defs = append(defs, def)
		}
	}

	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// Get looks up one definition by ID, seeded first
func (s *Service) Get(ctx context.Context, id types.MitigationID) (*model.MitigationDefinition, error) {
	for _, def := range s.seeded {
		if def.ID == id {
			copied := *def
			return &copied, nil
		}
	}
	return s.repo.Get(ctx, id)
}

// CreateCustom persists a user-defined mitigation definition. The ID is
// assigned here and IsCustom is always forced on.
func (s *Service) CreateCustom(ctx context.Context, name, description string, category types.MitigationCategory, defaultReduction int) (*model.MitigationDefinition, error) {
	def := &model.MitigationDefinition{
		ID:               types.NewMitigationID(),
		Name:             name,
		Description:      description,
		Category:         category,
		DefaultReduction: defaultReduction,
		IsCustom:         true,
	}
	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid custom mitigation definition")
	}

	return s.repo.Create(ctx, def)
}

// DeleteCustom removes a user-created definition. Seeded definitions cannot be
// deleted.
func (s *Service) DeleteCustom(ctx context.Context, id types.MitigationID) error {
	for _, def := range s.seeded {
		if def.ID == id {
			return goerr.New("seeded mitigation definitions cannot be deleted", goerr.V("id", id))
		}
	}
	return s.repo.Delete(ctx, id)
}

func matches(defCategory, requested types.MitigationCategory) bool {
	if requested == "" {
		return true
	}
	return defCategory == requested || defCategory == types.MitigationCategoryGeneral
}
