package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.uc.Asset.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, assets)
}

func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	var asset model.Asset
	if err := decodeJSON(r, &asset); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Asset.Create(r.Context(), &asset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.uc.Asset.Get(r.Context(), types.AssetID(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, asset)
}

func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	var asset model.Asset
	if err := decodeJSON(r, &asset); err != nil {
		respondError(w, r, err)
		return
	}
	asset.ID = types.AssetID(chi.URLParam(r, "id"))

	updated, err := s.uc.Asset.Update(r.Context(), &asset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Asset.Delete(r.Context(), types.AssetID(chi.URLParam(r, "id"))); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
