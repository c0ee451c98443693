package postgres

import (
	"context"
	"database/sql"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ghuser/worktrack/pkg/database"
	"github.com/ghuser/worktrack/pkg/events"
	"github.com/ghuser/worktrack/services/tracker/domain"
	domainevents "github.com/ghuser/worktrack/services/tracker/domain/events"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// TxPublisher publishes messages inside an open SQL transaction.
// *events.EventBus satisfies it.
type TxPublisher interface {
	PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error
}

// NewWorkItemRepository returns a work item repository that preloads the
// assignee. When bus is non-nil, created, updated and deleted events are
// written to the outbox in the same transaction as the row.
func NewWorkItemRepository(db *database.Database, bus TxPublisher) repositories.WorkItemRepository {
	s := &store[models.WorkItem, WorkItemRecord]{
		db:       db,
		name:     "work item",
		notFound: domain.ErrWorkItemNotFound,
		conflict: domain.ErrAlreadyExists,
		preload:  []string{"Assignee"},
		toRecord: workItemToRecord,
		toModel:  recordToWorkItem,
	}
	if bus != nil {
		o := workItemOutbox{bus: bus}
		s.afterSave = o.created
		s.afterUpdate = o.updated
		s.afterDelete = o.deleted
	}
	return s
}

type workItemOutbox struct {
	bus TxPublisher
}

func (o workItemOutbox) created(ctx context.Context, tx *gorm.DB, w *models.WorkItem) error {
	return o.publish(ctx, tx, domainevents.TopicWorkItemCreated, domainevents.NewWorkItemEvent(w))
}

func (o workItemOutbox) updated(ctx context.Context, tx *gorm.DB, w *models.WorkItem) error {
	return o.publish(ctx, tx, domainevents.TopicWorkItemUpdated, domainevents.NewWorkItemEvent(w))
}

func (o workItemOutbox) deleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return o.publish(ctx, tx, domainevents.TopicWorkItemDeleted, domainevents.NewWorkItemDeletedEvent(id))
}

func (o workItemOutbox) publish(ctx context.Context, tx *gorm.DB, topic string, event any) error {
	msg, err := events.NewJSONMessage(event, domainevents.SchemaVersion)
	if err != nil {
		return err
	}
	return o.bus.PublishTx(ctx, database.SQLTx(tx), topic, msg)
}
