package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/utils/safe"
)

// Service archives detection snapshots to a GCS bucket for audit. One object
// per detection run, keyed by organization and timestamp.
type Service struct {
	client *storage.Client
	bucket string
}

var _ interfaces.Archiver = &Service{}

func New(ctx context.Context, bucket string) (*Service, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &Service{
		client: client,
		bucket: bucket,
	}, nil
}

// ArchiveSnapshot writes the snapshot as a JSON object and returns its path
func (s *Service) ArchiveSnapshot(ctx context.Context, organizationID string, snapshot *model.OrgSnapshot) (string, error) {
	if snapshot == nil {
		return "", goerr.New("snapshot is required")
	}

	path := fmt.Sprintf("detections/%s/%s.json", organizationID, time.Now().UTC().Format("20060102T150405Z"))

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = "application/json"

	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to encode snapshot", goerr.V("path", path))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to write snapshot archive",
			goerr.V("bucket", s.bucket), goerr.V("path", path))
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, path), nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
