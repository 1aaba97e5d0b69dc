package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := s.uc.Incident.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, incidents)
}

func (s *Server) createIncident(w http.ResponseWriter, r *http.Request) {
	var incident model.Incident
	if err := decodeJSON(r, &incident); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Incident.Create(r.Context(), &incident)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	incident, err := s.uc.Incident.Get(r.Context(), types.IncidentID(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, incident)
}

func (s *Server) updateIncident(w http.ResponseWriter, r *http.Request) {
	var incident model.Incident
	if err := decodeJSON(r, &incident); err != nil {
		respondError(w, r, err)
		return
	}
	incident.ID = types.IncidentID(chi.URLParam(r, "id"))

	updated, err := s.uc.Incident.Update(r.Context(), &incident)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteIncident(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Incident.Delete(r.Context(), types.IncidentID(chi.URLParam(r, "id"))); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
