package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/repository/firestore"
	"github.com/secops-lab/panoptes/pkg/repository/memory"
	"github.com/secops-lab/panoptes/pkg/usecase"
	"github.com/secops-lab/panoptes/pkg/utils/errutil"
	"github.com/secops-lab/panoptes/pkg/utils/safe"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// respondError maps domain errors onto HTTP status codes. Unmatched errors
// are treated as client mistakes: the usecase layer wraps genuine backend
// failures, and those carry their own status at the call site.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, memory.ErrNotFound), errors.Is(err, firestore.ErrNotFound),
		errors.Is(err, model.ErrMitigationNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case errors.Is(err, model.ErrDuplicateMitigation), errors.Is(err, usecase.ErrStagingNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusConflict)
	case errors.Is(err, usecase.ErrDetectionDisabled):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusForbidden)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	}
}
