package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type personnelRepository struct {
	mu      sync.RWMutex
	records map[types.PersonnelID]*model.Personnel
}

func newPersonnelRepository() *personnelRepository {
	return &personnelRepository{
		records: make(map[types.PersonnelID]*model.Personnel),
	}
}

func (r *personnelRepository) Create(ctx context.Context, person *model.Personnel) (*model.Personnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[person.ID]; exists {
		return nil, goerr.New("personnel already exists", goerr.V("id", person.ID))
	}

	now := time.Now().UTC()
	created := clonePersonnel(person)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.records[created.ID] = created
	return clonePersonnel(created), nil
}

func (r *personnelRepository) Get(ctx context.Context, id types.PersonnelID) (*model.Personnel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	person, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "personnel not found", goerr.V("id", id))
	}

	return clonePersonnel(person), nil
}

func (r *personnelRepository) List(ctx context.Context) ([]*model.Personnel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.Personnel, 0, len(r.records))
	for _, person := range r.records {
		records = append(records, clonePersonnel(person))
	}

	return records, nil
}

func (r *personnelRepository) Update(ctx context.Context, person *model.Personnel) (*model.Personnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[person.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "personnel not found", goerr.V("id", person.ID))
	}

	updated := clonePersonnel(person)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.records[updated.ID] = updated
	return clonePersonnel(updated), nil
}

func (r *personnelRepository) Delete(ctx context.Context, id types.PersonnelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, "personnel not found", goerr.V("id", id))
	}

	delete(r.records, id)
	return nil
}
