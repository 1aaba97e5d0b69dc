package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
)

func riskIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid risk ID", goerr.V("id", raw))
	}
	return id, nil
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := s.uc.Risk.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, risks)
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	var risk model.Risk
	if err := decodeJSON(r, &risk); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Risk.Create(r.Context(), &risk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	id, err := riskIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	risk, err := s.uc.Risk.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, risk)
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	id, err := riskIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var risk model.Risk
	if err := decodeJSON(r, &risk); err != nil {
		respondError(w, r, err)
		return
	}
	risk.ID = id

	updated, err := s.uc.Risk.Update(r.Context(), &risk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	id, err := riskIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.uc.Risk.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
