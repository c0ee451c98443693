package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// CreateWorkItemRequest is the request body for POST /work-items.
// Omitted status, priority and type keep their defaults (todo, medium, task).
type CreateWorkItemRequest struct {
	Title       string `json:"title"                 example:"Fix login redirect"`
	Description string `json:"description,omitempty" example:"Users land on a blank page after login."`
	Status      string `json:"status,omitempty"      example:"todo"`
	Priority    string `json:"priority,omitempty"    example:"high"`
	Type        string `json:"type,omitempty"        example:"bug"`
	AssigneeID  string `json:"assignee_id,omitempty" validate:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name CreateWorkItemRequest

// UpdateWorkItemRequest is the request body for PATCH /work-items/{id}.
// Omitted fields are left unchanged; an empty description clears it.
type UpdateWorkItemRequest struct {
	Title       *string `json:"title,omitempty"       example:"Fix login redirect"`
	Description *string `json:"description,omitempty" example:""`
	Status      *string `json:"status,omitempty"      example:"in_progress"`
	Priority    *string `json:"priority,omitempty"    example:"critical"`
	Type        *string `json:"type,omitempty"        example:"bug"`
} // @name UpdateWorkItemRequest

// AssignWorkItemRequest is the request body for PUT /work-items/{id}/assignee.
type AssignWorkItemRequest struct {
	UserID string `json:"user_id" validate:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name AssignWorkItemRequest

// WorkItemResponse is the public view of a work item.
type WorkItemResponse struct {
	ID          uuid.UUID     `json:"id"                    example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string        `json:"title"                 example:"Fix login redirect"`
	Description string        `json:"description,omitempty" example:"Users land on a blank page after login."`
	Status      string        `json:"status"                example:"todo"`
	Priority    string        `json:"priority"              example:"high"`
	Type        string        `json:"type"                  example:"bug"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
	CreatedAt   time.Time     `json:"created_at"            example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time     `json:"updated_at"            example:"2024-01-15T10:30:00Z"`
} // @name WorkItemResponse

// WorkItemListResponse is a page of work items.
type WorkItemListResponse struct {
	Items  []WorkItemResponse `json:"items"`
	Total  int                `json:"total"  example:"42"`
	Limit  int                `json:"limit"  example:"50"`
	Offset int                `json:"offset" example:"0"`
} // @name WorkItemListResponse

func toWorkItemResponse(w *models.WorkItem) WorkItemResponse {
	resp := WorkItemResponse{
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
		u := toUserResponse(a)
		resp.Assignee = &u
	}
	return resp
}

func toWorkItemResponses(items []*models.WorkItem) []WorkItemResponse {
	out := make([]WorkItemResponse, 0, len(items))
	for _, w := range items {
		out = append(out, toWorkItemResponse(w))
	}
	return out
}

// WorkItemHandler serves /work-items.
type WorkItemHandler struct {
	svc *appsvcs.Services
}

func NewWorkItemHandler(svc *appsvcs.Services) *WorkItemHandler {
	return &WorkItemHandler{svc: svc}
}

// Create creates a work item.
//
//	@Summary		Create work item
//	@Description	Creates a work item; every invalid field is reported
//	@Tags			work-items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateWorkItemRequest	true	"Work item creation request"
//	@Success		201		{object}	WorkItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/work-items [post]
func (h *WorkItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateWorkItemRequest](w, r)
	if !ok {
		return
	}

	in := appsvcs.CreateWorkItemInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
	}
	if req.AssigneeID != "" {
		assignee, ok := bodyID[models.User](w, "assignee_id", req.AssigneeID)
		if !ok {
			return
		}
		in.AssigneeID = &assignee
	}

	item, err := h.svc.WorkItem.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, item.ID().String(), toWorkItemResponse(item))
}

// List returns a page of work items.
//
//	@Summary	List work items
//	@Tags		work-items
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (max 200)"
//	@Param		offset	query		int	false	"Items to skip"
//	@Success	200		{object}	WorkItemListResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/work-items [get]
func (h *WorkItemHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := pageOpts(r)
	items, total, err := h.svc.WorkItem.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, WorkItemListResponse{
		Items:  toWorkItemResponses(items),
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

// Get returns a work item.
//
//	@Summary	Get work item
//	@Tags		work-items
//	@Produce	json
//	@Param		id	path		string	true	"Work item ID"
//	@Success	200	{object}	WorkItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/work-items/{id} [get]
func (h *WorkItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.WorkItem](w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.WorkItem.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toWorkItemResponse(item))
}

// Update changes the given fields of a work item. Nothing is saved unless
// every change is valid.
//
//	@Summary	Update work item
//	@Tags		work-items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Work item ID"
//	@Param		request	body		UpdateWorkItemRequest	true	"Fields to change"
//	@Success	200		{object}	WorkItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/work-items/{id} [patch]
func (h *WorkItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.WorkItem](w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateWorkItemRequest](w, r)
	if !ok {
		return
	}
	item, err := h.svc.WorkItem.Update(r.Context(), id, appsvcs.UpdateWorkItemInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toWorkItemResponse(item))
}

// Delete removes a work item.
//
//	@Summary	Delete work item
//	@Tags		work-items
//	@Param		id	path	string	true	"Work item ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/work-items/{id} [delete]
func (h *WorkItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.WorkItem](w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.WorkItem.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// Assign sets the assignee.
//
//	@Summary	Assign work item
//	@Tags		work-items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Work item ID"
//	@Param		request	body		AssignWorkItemRequest	true	"Assignee"
//	@Success	200		{object}	WorkItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/work-items/{id}/assignee [put]
func (h *WorkItemHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.WorkItem](w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AssignWorkItemRequest](w, r)
	if !ok {
		return
	}
	user, ok := bodyID[models.User](w, "user_id", req.UserID)
	if !ok {
		return
	}
	item, err := h.svc.WorkItem.Assign(r.Context(), id, user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toWorkItemResponse(item))
}

// Unassign clears the assignee.
//
//	@Summary	Unassign work item
//	@Tags		work-items
//	@Produce	json
//	@Param		id	path		string	true	"Work item ID"
//	@Success	200	{object}	WorkItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/work-items/{id}/assignee [delete]
func (h *WorkItemHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.WorkItem](w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.WorkItem.Unassign(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toWorkItemResponse(item))
}
