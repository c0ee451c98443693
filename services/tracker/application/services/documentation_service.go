package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/services/tracker/domain"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// ContentURLExpiry is how long a presigned download URL stays valid.
const ContentURLExpiry = 15 * time.Minute

// ErrContentStoreUnavailable is returned when no object store is configured.
var ErrContentStoreUnavailable = errors.New("content store is not configured")

// DocumentationService manages documentation records and their stored bodies.
type DocumentationService struct {
	repo      repositories.DocumentationRepository
	content   ContentStore
	scheduler CleanupScheduler
	log       logger.Logger
	metrics   *metrics
}

// Create persists documentation metadata. Content is uploaded separately.
func (s *DocumentationService) Create(ctx context.Context, title, format string) (*models.Documentation, error) {
	built := models.NewDocumentationBuilder().WithTitle(title).WithFormat(format).Build()
	if err := s.metrics.check(ctx, "documentation", built.Result()); err != nil {
		return nil, err
	}
	d := built.Value()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save documentation: %w", err)
	}
	return d, nil
}

func (s *DocumentationService) Get(ctx context.Context, id models.ID[models.Documentation]) (*models.Documentation, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get documentation: %w", err)
	}
	return d, nil
}

// UploadContent stores body under the documentation's content key and
// records the reference. Uploading again replaces the previous body.
func (s *DocumentationService) UploadContent(ctx context.Context, id models.ID[models.Documentation], body io.Reader, contentType string, size int64) (*models.Documentation, error) {
	if s.content == nil {
		return nil, ErrContentStoreUnavailable
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := ContentKey(d)
	if contentType == "" {
		contentType = mime.TypeByExtension(d.Format().String())
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.content.Upload(ctx, key, body, contentType, size); err != nil {
		return nil, fmt.Errorf("upload content: %w", err)
	}

	if err := s.metrics.check(ctx, "documentation", d.UpdateContentReference(key)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update documentation: %w", err)
	}
	return d, nil
}

// ContentURL returns a presigned download URL for the stored body.
// Documentation without content fails with ErrNoContent.
func (s *DocumentationService) ContentURL(ctx context.Context, id models.ID[models.Documentation]) (string, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !d.HasContent() {
		return "", domain.ErrNoContent
	}
	if s.content == nil {
		return "", ErrContentStoreUnavailable
	}
	url, err := s.content.PresignGet(ctx, d.ContentReference().String(), ContentURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign content: %w", err)
	}
	return url, nil
}

// Delete removes the documentation record. Stored content is removed by
// ContentCleanupWorkflow when a scheduler is configured, and inline otherwise.
// A failed cleanup is logged; the record stays deleted.
func (s *DocumentationService) Delete(ctx context.Context, id models.ID[models.Documentation]) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete documentation: %w", err)
	}
	if !d.HasContent() {
		return nil
	}

	key := d.ContentReference().String()
	switch {
	case s.scheduler != nil:
		err = s.scheduler.ScheduleContentCleanup(ctx, id.String(), key)
	case s.content != nil:
		err = s.content.Delete(ctx, key)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "documentation content cleanup failed",
			"documentation_id", id.String(), "content_key", key, "error", err)
	}
	return nil
}

// ContentKey is the object key documentation content is stored under.
func ContentKey(d *models.Documentation) string {
	return "documentation/" + d.ID().String() + d.Format().String()
}
