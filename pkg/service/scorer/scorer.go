package scorer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/utils/logging"
)

// ErrScoringUnavailable wraps any inference failure so callers can substitute
// a default assessment without inspecting transport errors.
var ErrScoringUnavailable = goerr.New("risk scoring unavailable")

// client implements interfaces.Scorer on top of an LLM with structured output
type client struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new scoring service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (interfaces.Scorer, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type scoreResponse struct {
	Score      int `json:"score"`
	Components []struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"components"`
	Trend           string   `json:"trend"`
	Confidence      int      `json:"confidence"`
	Recommendations []string `json:"recommendations"`
	Explanation     string   `json:"explanation"`
}

// ScoreRisk scores one entity snapshot. Any LLM or parsing failure is wrapped
// in ErrScoringUnavailable; the raw result is validated but never clamped, so
// an out-of-range score from the model surfaces as an error here.
func (c *client) ScoreRisk(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error) {
	if snapshot == nil {
		return nil, goerr.New("entity snapshot is required")
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(scoreResponseSchema(kind)),
		gollem.WithSessionSystemPrompt(buildScoreSystemPrompt(kind)),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "failed to create LLM session", goerr.V("cause", err))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildScoreUserPrompt(snapshot)))
	if err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "failed to generate score", goerr.V("cause", err))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrScoringUnavailable, "empty LLM response")
	}

	var parsed scoreResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "failed to parse score response",
			goerr.V("response", resp.Texts[0]), goerr.V("cause", err))
	}

	raw := &model.RawAssessment{
		Score:           parsed.Score,
		Trend:           types.RiskTrend(parsed.Trend),
		Confidence:      parsed.Confidence,
		Recommendations: parsed.Recommendations,
		Explanation:     parsed.Explanation,
	}
	if len(parsed.Components) > 0 {
		raw.Components = make(model.RiskComponents, len(parsed.Components))
		for _, comp := range parsed.Components {
			raw.Components[comp.Name] = comp.Score
		}
	}

	if err := raw.Validate(); err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "model returned invalid assessment",
			goerr.V("kind", kind), goerr.V("entityID", snapshot.ID), goerr.V("cause", err))
	}

	return raw, nil
}

type detectResponse struct {
	Risks []struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		Category        string   `json:"category"`
		Impact          string   `json:"impact"`
		Likelihood      string   `json:"likelihood"`
		Confidence      int      `json:"confidence"`
		SourceType      string   `json:"source_type"`
		SourceID        string   `json:"source_id"`
		Department      string   `json:"department"`
		Recommendations []string `json:"recommendations"`
	} `json:"risks"`
}

// DetectRisks proposes candidate register entries from the org-wide snapshot.
// Malformed candidates from the model are dropped rather than failing the
// whole run; an empty result is a normal outcome.
func (c *client) DetectRisks(ctx context.Context, organizationID string, snapshot *model.OrgSnapshot) ([]*model.DetectedRisk, error) {
	if snapshot == nil || snapshot.Empty() {
		return nil, nil
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(detectResponseSchema()),
		gollem.WithSessionSystemPrompt(buildDetectSystemPrompt()),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "failed to create LLM session", goerr.V("cause", err))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildDetectUserPrompt(organizationID, snapshot)))
	if err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "failed to run detection", goerr.V("cause", err))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrScoringUnavailable, "empty LLM response")
	}

	var parsed detectResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, goerr.Wrap(ErrScoringUnavailable, "failed to parse detection response",
			goerr.V("response", resp.Texts[0]), goerr.V("cause", err))
	}

	candidates := make([]*model.DetectedRisk, 0, len(parsed.Risks))
	for _, r := range parsed.Risks {
		candidate := &model.DetectedRisk{
			CandidateID:     uuid.Must(uuid.NewV7()).String(),
			Title:           r.Title,
			Description:     r.Description,
			Category:        r.Category,
			Impact:          r.Impact,
			Likelihood:      r.Likelihood,
			Confidence:      r.Confidence,
			SourceType:      types.RiskSourceType(r.SourceType),
			SourceID:        r.SourceID,
			Department:      r.Department,
			Recommendations: r.Recommendations,
		}
		if err := candidate.Validate(); err != nil {
			logging.From(ctx).Warn("dropping malformed detection candidate",
				"title", r.Title, "error", err)
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
