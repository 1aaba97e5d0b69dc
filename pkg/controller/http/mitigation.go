package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type addMitigationRequest struct {
	MitigationID types.MitigationID `json:"mitigation_id"`
	AppliedBy    string             `json:"applied_by"`
}

type updateMitigationRequest struct {
	AppliedReduction *int    `json:"applied_reduction,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type assessmentResponse struct {
	Assessment *model.RiskAssessment `json:"assessment"`
}

func (s *Server) addMitigation(kind types.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMitigationRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		if req.MitigationID == "" {
			respondError(w, r, goerr.New("mitigation_id is required"))
			return
		}

		assessment, err := s.uc.Assessment.AddMitigation(r.Context(), kind, chi.URLParam(r, "id"), req.MitigationID, req.AppliedBy)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, assessmentResponse{Assessment: assessment})
	}
}

func (s *Server) updateMitigation(kind types.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMitigationRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}

		assessment, err := s.uc.Assessment.UpdateMitigation(r.Context(), kind, chi.URLParam(r, "id"),
			types.MitigationID(chi.URLParam(r, "mitigationID")),
			model.MitigationPatch{
				AppliedReduction: req.AppliedReduction,
				Notes:            req.Notes,
			})
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, assessmentResponse{Assessment: assessment})
	}
}

func (s *Server) removeMitigation(kind types.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessment, err := s.uc.Assessment.RemoveMitigation(r.Context(), kind, chi.URLParam(r, "id"),
			types.MitigationID(chi.URLParam(r, "mitigationID")))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, assessmentResponse{Assessment: assessment})
	}
}

type createMitigationRequest struct {
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	Category         types.MitigationCategory `json:"category"`
	DefaultReduction int                      `json:"default_reduction"`
}

func (s *Server) listMitigationCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := s.uc.Catalog()
	if catalog == nil {
		respondError(w, r, goerr.New("mitigation catalog is not configured"))
		return
	}

	category := types.MitigationCategory(r.URL.Query().Get("category"))
	defs, err := catalog.List(r.Context(), category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, defs)
}

func (s *Server) createCustomMitigation(w http.ResponseWriter, r *http.Request) {
	catalog := s.uc.Catalog()
	if catalog == nil {
		respondError(w, r, goerr.New("mitigation catalog is not configured"))
		return
	}

	var req createMitigationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	def, err := catalog.CreateCustom(r.Context(), req.Name, req.Description, req.Category, req.DefaultReduction)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, def)
}

func (s *Server) deleteCustomMitigation(w http.ResponseWriter, r *http.Request) {
	catalog := s.uc.Catalog()
	if catalog == nil {
		respondError(w, r, goerr.New("mitigation catalog is not configured"))
		return
	}

	if err := catalog.DeleteCustom(r.Context(), types.MitigationID(chi.URLParam(r, "id"))); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
