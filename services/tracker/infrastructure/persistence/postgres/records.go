package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// Column sizes mirror the value object bounds so the database rejects
// anything that bypassed domain validation.

type UserRecord struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName    string    `gorm:"column:first_name;size:50;not null"`
	LastName     string    `gorm:"column:last_name;size:50;not null"`
	Email        string    `gorm:"column:email;size:320;not null;uniqueIndex:tracker_users_email_key"`
	PasswordHash []byte    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (UserRecord) TableName() string { return "tracker_users" }

type WorkItemRecord struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	Title       string      `gorm:"column:title;size:75;not null"`
	Description string      `gorm:"column:description;size:2000;not null;default:''"`
	Status      string      `gorm:"column:status;size:20;not null;index"`
	Priority    string      `gorm:"column:priority;size:20;not null"`
	Type        string      `gorm:"column:item_type;size:20;not null"`
	AssigneeID  *uuid.UUID  `gorm:"column:assignee_id;type:uuid;index"`
	Assignee    *UserRecord `gorm:"foreignKey:AssigneeID;references:ID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time   `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (WorkItemRecord) TableName() string { return "tracker_work_items" }

// FilterRecord and OrderByRecord are stored inside the boards row as jsonb.
type FilterRecord struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type OrderByRecord struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type BoardRecord struct {
	ID        uuid.UUID                          `gorm:"column:id;type:uuid;primaryKey"`
	Title     string                             `gorm:"column:title;size:75;not null"`
	Filters   datatypes.JSONSlice[FilterRecord]  `gorm:"column:filters;not null"`
	OrderBy   datatypes.JSONSlice[OrderByRecord] `gorm:"column:order_by;not null"`
	CreatedAt time.Time                          `gorm:"column:created_at;not null"`
}

func (BoardRecord) TableName() string { return "tracker_boards" }

type IterationRecord struct {
	ID        uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey"`
	Title     string                         `gorm:"column:title;size:75;not null"`
	WorkItems datatypes.JSONSlice[uuid.UUID] `gorm:"column:work_item_ids;not null"`
	CreatedAt time.Time                      `gorm:"column:created_at;not null"`
}

func (IterationRecord) TableName() string { return "tracker_iterations" }

type MilestoneRecord struct {
	ID        uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey"`
	Title     string                         `gorm:"column:title;size:75;not null"`
	WorkItems datatypes.JSONSlice[uuid.UUID] `gorm:"column:work_item_ids;not null"`
	CreatedAt time.Time                      `gorm:"column:created_at;not null"`
}

func (MilestoneRecord) TableName() string { return "tracker_milestones" }

type ProjectRecord struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title       string    `gorm:"column:title;size:75;not null"`
	Description string    `gorm:"column:description;size:2000;not null;default:''"`
	StartsAt    time.Time `gorm:"column:starts_at;not null"`
	EndsAt      time.Time `gorm:"column:ends_at;not null"`
	Status      string    `gorm:"column:status;size:20;not null"`
	Priority    string    `gorm:"column:priority;size:20;not null"`
	Methodology string    `gorm:"column:methodology;size:20;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (ProjectRecord) TableName() string { return "tracker_projects" }

type OrganisationRecord struct {
	ID        uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey"`
	Name      string                         `gorm:"column:name;size:100;not null"`
	Owners    datatypes.JSONSlice[uuid.UUID] `gorm:"column:owner_ids;not null"`
	CreatedAt time.Time                      `gorm:"column:created_at;not null"`
}

func (OrganisationRecord) TableName() string { return "tracker_organisations" }

type WorkspaceRecord struct {
	ID        uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey"`
	Title     string                         `gorm:"column:title;size:75;not null"`
	OwnerID   uuid.UUID                      `gorm:"column:owner_id;type:uuid;not null;index"`
	Projects  datatypes.JSONSlice[uuid.UUID] `gorm:"column:project_ids;not null"`
	Documents datatypes.JSONSlice[uuid.UUID] `gorm:"column:document_ids;not null"`
	Contacts  datatypes.JSONSlice[uuid.UUID] `gorm:"column:contact_ids;not null"`
	CreatedAt time.Time                      `gorm:"column:created_at;not null"`
}

func (WorkspaceRecord) TableName() string { return "tracker_workspaces" }

type DocumentationRecord struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title      string    `gorm:"column:title;size:75;not null"`
	Format     string    `gorm:"column:format;size:10;not null"`
	ContentRef string    `gorm:"column:content_ref;size:1024;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (DocumentationRecord) TableName() string { return "tracker_documentation" }

// Records lists every table model, in dependency order.
func Records() []any {
	return []any{
		&UserRecord{},
		&WorkItemRecord{},
		&BoardRecord{},
		&IterationRecord{},
		&MilestoneRecord{},
		&ProjectRecord{},
		&OrganisationRecord{},
		&WorkspaceRecord{},
		&DocumentationRecord{},
	}
}

func uuidSlice[T any](ids []models.ID[T]) datatypes.JSONSlice[uuid.UUID] {
	out := models.UUIDs(ids)
	if out == nil {
		out = []uuid.UUID{}
	}
	return datatypes.JSONSlice[uuid.UUID](out)
}

func userToRecord(u *models.User) *UserRecord {
	return &UserRecord{
		ID:           u.ID().UUID(),
		FirstName:    u.FirstName().String(),
		LastName:     u.LastName().String(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
	}
}

func recordToUser(r *UserRecord) *models.User {
	return models.RestoreUser(models.IDFrom[models.User](r.ID), r.FirstName, r.LastName, r.Email, r.PasswordHash, r.CreatedAt.UTC())
}

func workItemToRecord(w *models.WorkItem) *WorkItemRecord {
	rec := &WorkItemRecord{
		ID:          w.ID().UUID(),
		Title:       w.Title().String(),
		Description: w.Description().String(),
		Status:      w.Status().String(),
		Priority:    w.Priority().String(),
		Type:        w.Type().String(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
	}
	if a := w.Assignee(); a != nil {
		id := a.ID().UUID()
		rec.AssigneeID = &id
	}
	return rec
}

func recordToWorkItem(r *WorkItemRecord) *models.WorkItem {
	s := models.WorkItemSnapshot{
		ID:          models.IDFrom[models.WorkItem](r.ID),
		Title:       r.Title,
		Description: r.Description,
		Status:      models.WorkItemStatus(r.Status),
		Priority:    models.Priority(r.Priority),
		Type:        models.WorkItemType(r.Type),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.Assignee != nil {
		s.Assignee = recordToUser(r.Assignee)
	}
	return models.RestoreWorkItem(s)
}

func boardToRecord(b *models.Board) *BoardRecord {
	filters := make([]FilterRecord, 0, len(b.Filters()))
	for _, f := range b.Filters() {
		filters = append(filters, FilterRecord{Field: string(f.Field()), Operator: string(f.Operator()), Value: f.Value()})
	}
	orderBy := make([]OrderByRecord, 0, len(b.OrderBy()))
	for _, o := range b.OrderBy() {
		orderBy = append(orderBy, OrderByRecord{Field: string(o.Field()), Direction: string(o.Direction())})
	}
	return &BoardRecord{
		ID:      b.ID().UUID(),
		Title:   b.Title().String(),
		Filters: filters,
		OrderBy: orderBy,
	}
}

func recordToBoard(r *BoardRecord) *models.Board {
	filters := make([]models.Filter, 0, len(r.Filters))
	for _, f := range r.Filters {
		filters = append(filters, models.RestoreFilter(models.FilterField(f.Field), models.FilterOperator(f.Operator), f.Value))
	}
	orderBy := make([]models.OrderBy, 0, len(r.OrderBy))
	for _, o := range r.OrderBy {
		orderBy = append(orderBy, models.RestoreOrderBy(models.SortField(o.Field), models.SortDirection(o.Direction)))
	}
	return models.RestoreBoard(models.IDFrom[models.Board](r.ID), r.Title, filters, orderBy)
}

func iterationToRecord(i *models.Iteration) *IterationRecord {
	return &IterationRecord{ID: i.ID().UUID(), Title: i.Title().String(), WorkItems: uuidSlice(i.WorkItems())}
}

func recordToIteration(r *IterationRecord) *models.Iteration {
	return models.RestoreIteration(models.IDFrom[models.Iteration](r.ID), r.Title, models.IDsFrom[models.WorkItem](r.WorkItems))
}

func milestoneToRecord(m *models.Milestone) *MilestoneRecord {
	return &MilestoneRecord{ID: m.ID().UUID(), Title: m.Title().String(), WorkItems: uuidSlice(m.WorkItems())}
}

func recordToMilestone(r *MilestoneRecord) *models.Milestone {
	return models.RestoreMilestone(models.IDFrom[models.Milestone](r.ID), r.Title, models.IDsFrom[models.WorkItem](r.WorkItems))
}

func projectToRecord(p *models.Project) *ProjectRecord {
	return &ProjectRecord{
		ID:          p.ID().UUID(),
		Title:       p.Title().String(),
		Description: p.Description().String(),
		StartsAt:    p.TimeRange().Start(),
		EndsAt:      p.TimeRange().End(),
		Status:      p.Status().String(),
		Priority:    p.Priority().String(),
		Methodology: p.Methodology().String(),
	}
}

func recordToProject(r *ProjectRecord) *models.Project {
	return models.RestoreProject(models.ProjectSnapshot{
		ID:          models.IDFrom[models.Project](r.ID),
		Title:       r.Title,
		Description: r.Description,
		Start:       r.StartsAt,
		End:         r.EndsAt,
		Status:      models.ProjectStatus(r.Status),
		Priority:    models.Priority(r.Priority),
		Methodology: models.Methodology(r.Methodology),
	})
}

func organisationToRecord(o *models.Organisation) *OrganisationRecord {
	return &OrganisationRecord{ID: o.ID().UUID(), Name: o.Name().String(), Owners: uuidSlice(o.Owners())}
}

func recordToOrganisation(r *OrganisationRecord) *models.Organisation {
	return models.RestoreOrganisation(models.IDFrom[models.Organisation](r.ID), r.Name, models.IDsFrom[models.User](r.Owners))
}

func workspaceToRecord(w *models.Workspace) *WorkspaceRecord {
	return &WorkspaceRecord{
		ID:        w.ID().UUID(),
		Title:     w.Title().String(),
		OwnerID:   w.Owner().UUID(),
		Projects:  uuidSlice(w.Projects()),
		Documents: uuidSlice(w.Documents()),
		Contacts:  uuidSlice(w.Contacts()),
	}
}

func recordToWorkspace(r *WorkspaceRecord) *models.Workspace {
	return models.RestoreWorkspace(models.WorkspaceSnapshot{
		ID:        models.IDFrom[models.Workspace](r.ID),
		Title:     r.Title,
		Owner:     models.IDFrom[models.User](r.OwnerID),
		Projects:  models.IDsFrom[models.Project](r.Projects),
		Documents: models.IDsFrom[models.Documentation](r.Documents),
		Contacts:  models.IDsFrom[models.User](r.Contacts),
	})
}

func documentationToRecord(d *models.Documentation) *DocumentationRecord {
	return &DocumentationRecord{
		ID:         d.ID().UUID(),
		Title:      d.Title().String(),
		Format:     d.Format().String(),
		ContentRef: d.ContentReference().String(),
	}
}

func recordToDocumentation(r *DocumentationRecord) *models.Documentation {
	return models.RestoreDocumentation(models.IDFrom[models.Documentation](r.ID), r.Title, r.Format, r.ContentRef)
}
