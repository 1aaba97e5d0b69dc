package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type incidentRepository struct {
	mu        sync.RWMutex
	incidents map[types.IncidentID]*model.Incident
}

func newIncidentRepository() *incidentRepository {
	return &incidentRepository{
		incidents: make(map[types.IncidentID]*model.Incident),
	}
}

func (r *incidentRepository) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[incident.ID]; exists {
		return nil, goerr.New("incident already exists", goerr.V("id", incident.ID))
	}

	now := time.Now().UTC()
	created := cloneIncident(incident)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.incidents[created.ID] = created
	return cloneIncident(created), nil
}

func (r *incidentRepository) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	incident, exists := r.incidents[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}

	return cloneIncident(incident), nil
}

func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	incidents := make([]*model.Incident, 0, len(r.incidents))
	for _, incident := range r.incidents {
		incidents = append(incidents, cloneIncident(incident))
	}

	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.incidents[incident.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", incident.ID))
	}

	updated := cloneIncident(incident)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.incidents[updated.ID] = updated
	return cloneIncident(updated), nil
}

func (r *incidentRepository) Delete(ctx context.Context, id types.IncidentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[id]; !exists {
		return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}

	delete(r.incidents, id)
	return nil
}
