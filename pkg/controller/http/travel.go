package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func (s *Server) listTravelPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.uc.Travel.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, plans)
}

func (s *Server) createTravelPlan(w http.ResponseWriter, r *http.Request) {
	var plan model.TravelPlan
	if err := decodeJSON(r, &plan); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Travel.Create(r.Context(), &plan)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getTravelPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.uc.Travel.Get(r.Context(), types.TravelPlanID(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, plan)
}

func (s *Server) updateTravelPlan(w http.ResponseWriter, r *http.Request) {
	var plan model.TravelPlan
	if err := decodeJSON(r, &plan); err != nil {
		respondError(w, r, err)
		return
	}
	plan.ID = types.TravelPlanID(chi.URLParam(r, "id"))

	updated, err := s.uc.Travel.Update(r.Context(), &plan)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteTravelPlan(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Travel.Delete(r.Context(), types.TravelPlanID(chi.URLParam(r, "id"))); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
