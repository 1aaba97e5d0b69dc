package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

// Scorer is the external inference service producing raw risk scores and
// org-wide risk detection. Both calls are network round trips and may fail;
// retry and timeout policy belongs to the caller, and per-entity scoring
// failures are recovered with a default assessment at the call boundary.
type Scorer interface {
	// ScoreRisk scores one entity snapshot
	ScoreRisk(ctx context.Context, kind types.EntityKind, snapshot *model.EntitySnapshot) (*model.RawAssessment, error)

	// DetectRisks proposes candidate risk register entries from an
	// organization-wide snapshot. An empty result is a normal outcome, not an
	// error.
	DetectRisks(ctx context.Context, organizationID string, snapshot *model.OrgSnapshot) ([]*model.DetectedRisk, error)
}
