package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func (s *Server) listPersonnel(w http.ResponseWriter, r *http.Request) {
	people, err := s.uc.Personnel.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, people)
}

func (s *Server) createPersonnel(w http.ResponseWriter, r *http.Request) {
	var person model.Personnel
	if err := decodeJSON(r, &person); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Personnel.Create(r.Context(), &person)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getPersonnel(w http.ResponseWriter, r *http.Request) {
	person, err := s.uc.Personnel.Get(r.Context(), types.PersonnelID(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, person)
}

func (s *Server) updatePersonnel(w http.ResponseWriter, r *http.Request) {
	var person model.Personnel
	if err := decodeJSON(r, &person); err != nil {
		respondError(w, r, err)
		return
	}
	person.ID = types.PersonnelID(chi.URLParam(r, "id"))

	updated, err := s.uc.Personnel.Update(r.Context(), &person)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deletePersonnel(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Personnel.Delete(r.Context(), types.PersonnelID(chi.URLParam(r, "id"))); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
