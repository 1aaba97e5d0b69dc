package http

import (
	"net/http"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

type stagedBatchResponse struct {
	StagingID  types.StagingID       `json:"staging_id"`
	Candidates []*model.DetectedRisk `json:"candidates"`
}

type confirmRequest struct {
	StagingID    types.StagingID `json:"staging_id"`
	CandidateIDs []string        `json:"candidate_ids"`
}

type confirmFailureResponse struct {
	CandidateID string `json:"candidate_id"`
	Error       string `json:"error"`
}

type confirmResponse struct {
	Confirmed []*model.Risk            `json:"confirmed"`
	Failed    []confirmFailureResponse `json:"failed,omitempty"`
}

func (s *Server) runDetection(w http.ResponseWriter, r *http.Request) {
	batch, err := s.uc.Detection.Detect(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stagedBatchResponse{
		StagingID:  batch.StagingID,
		Candidates: batch.Candidates,
	})
}

func (s *Server) getStagedDetections(w http.ResponseWriter, r *http.Request) {
	batch := s.uc.Detection.Staged(r.Context())
	if batch == nil {
		respondJSON(w, r, http.StatusOK, stagedBatchResponse{Candidates: []*model.DetectedRisk{}})
		return
	}
	respondJSON(w, r, http.StatusOK, stagedBatchResponse{
		StagingID:  batch.StagingID,
		Candidates: batch.Candidates,
	})
}

func (s *Server) confirmDetections(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.uc.Detection.Confirm(r.Context(), req.StagingID, req.CandidateIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := confirmResponse{
		Confirmed: result.Confirmed,
	}
	if resp.Confirmed == nil {
		resp.Confirmed = []*model.Risk{}
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, confirmFailureResponse{
			CandidateID: f.CandidateID,
			Error:       f.Err.Error(),
		})
	}
	respondJSON(w, r, http.StatusOK, resp)
}
