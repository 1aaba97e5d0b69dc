package interfaces

import (
	"context"

	"github.com/secops-lab/panoptes/pkg/domain/model"
)

// Archiver stores org snapshots for audit before a detection run. Archiving is
// best-effort; detection proceeds even when the archive write fails.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, organizationID string, snapshot *model.OrgSnapshot) (string, error)
}

// Notifier announces confirmed AI-detected risks to an operations channel
type Notifier interface {
	NotifyConfirmedRisks(ctx context.Context, risks []*model.Risk) error
}
