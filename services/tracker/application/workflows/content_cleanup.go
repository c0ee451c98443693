// Package workflows holds the Temporal workflows of the tracker.
package workflows

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ContentCleanupInput identifies the stored body of a deleted documentation.
type ContentCleanupInput struct {
	DocumentationID string `json:"documentation_id"`
	ContentKey      string `json:"content_key"`
}

// ContentCleanupWorkflow deletes the stored body of a documentation after the
// documentation itself is gone. Storage outages are retried with backoff for
// up to a day.
func ContentCleanupWorkflow(ctx workflow.Context, in ContentCleanupInput) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout:    30 * time.Second,
		ScheduleToCloseTimeout: 24 * time.Hour,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    10 * time.Minute,
		},
	})

	var a *Activities
	if err := workflow.ExecuteActivity(ctx, a.DeleteContent, in.ContentKey).Get(ctx, nil); err != nil {
		return fmt.Errorf("delete content %s: %w", in.ContentKey, err)
	}
	workflow.GetLogger(ctx).Info("documentation content removed",
		"documentation_id", in.DocumentationID, "content_key", in.ContentKey)
	return nil
}

// ContentDeleter removes stored objects. *storage.S3Store satisfies it.
type ContentDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Activities carries the dependencies of the tracker activities.
type Activities struct {
	Content ContentDeleter
}

// DeleteContent removes one object. Deleting a missing object succeeds, so
// retries are safe.
func (a *Activities) DeleteContent(ctx context.Context, key string) error {
	activity.GetLogger(ctx).Debug("deleting documentation content", "content_key", key)
	return a.Content.Delete(ctx, key)
}

// Registrar is the part of worker.Worker used by Register.
type Registrar interface {
	RegisterWorkflow(w any)
	RegisterActivity(a any)
}

// Register adds the tracker workflows and activities to w.
func Register(w Registrar, acts *Activities) {
	w.RegisterWorkflow(ContentCleanupWorkflow)
	w.RegisterActivity(acts)
}

// CleanupScheduler starts ContentCleanupWorkflow runs.
type CleanupScheduler struct {
	client    client.Client
	taskQueue string
}

func NewCleanupScheduler(c client.Client, taskQueue string) *CleanupScheduler {
	return &CleanupScheduler{client: c, taskQueue: taskQueue}
}

// ScheduleContentCleanup starts one cleanup per documentation. The workflow
// ID is derived from the documentation, so a repeated call is rejected by
// Temporal instead of running twice.
func (s *CleanupScheduler) ScheduleContentCleanup(ctx context.Context, documentationID, contentKey string) error {
	_, err := s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "content-cleanup-" + documentationID,
		TaskQueue: s.taskQueue,
	}, ContentCleanupWorkflow, ContentCleanupInput{
		DocumentationID: documentationID,
		ContentKey:      contentKey,
	})
	if err != nil {
		return fmt.Errorf("start content cleanup: %w", err)
	}
	return nil
}
