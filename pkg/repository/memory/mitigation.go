package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type mitigationRepository struct {
	mu   sync.RWMutex
	defs map[types.MitigationID]*model.MitigationDefinition
}

func newMitigationRepository() *mitigationRepository {
	return &mitigationRepository{
		defs: make(map[types.MitigationID]*model.MitigationDefinition),
	}
}

func (r *mitigationRepository) Create(ctx context.Context, def *model.MitigationDefinition) (*model.MitigationDefinition, error) {
	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mitigation definition")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID]; exists {
		return nil, goerr.New("mitigation definition already exists", goerr.V("id", def.ID))
	}

	created := cloneDefinition(def)
	r.defs[created.ID] = created
	return cloneDefinition(created), nil
}

func (r *mitigationRepository) Get(ctx context.Context, id types.MitigationID) (*model.MitigationDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.defs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "mitigation definition not found", goerr.V("id", id))
	}

	return cloneDefinition(def), nil
}

func (r *mitigationRepository) List(ctx context.Context) ([]*model.MitigationDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*model.MitigationDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, cloneDefinition(def))
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })

	return defs, nil
}

func (r *mitigationRepository) Delete(ctx context.Context, id types.MitigationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[id]; !exists {
		return goerr.Wrap(ErrNotFound, "mitigation definition not found", goerr.V("id", id))
	}

	delete(r.defs, id)
	return nil
}
