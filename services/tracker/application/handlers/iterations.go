package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// CreateIterationRequest is the request body for POST /iterations.
type CreateIterationRequest struct {
	Title       string   `json:"title"                   example:"Sprint 14"`
	WorkItemIDs []string `json:"work_item_ids,omitempty" validate:"omitempty,dive,uuid"`
} // @name CreateIterationRequest

// IterationResponse is the public view of an iteration.
type IterationResponse struct {
	ID          uuid.UUID   `json:"id"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string      `json:"title" example:"Sprint 14"`
	WorkItemIDs []uuid.UUID `json:"work_item_ids"`
} // @name IterationResponse

func toIterationResponse(v *models.Iteration) IterationResponse {
	return IterationResponse{
		ID:          v.ID().UUID(),
		Title:       v.Title().String(),
		WorkItemIDs: models.UUIDs(v.WorkItems()),
	}
}

// IterationHandler serves /iterations.
type IterationHandler struct {
	svc *appsvcs.Services
}

func NewIterationHandler(svc *appsvcs.Services) *IterationHandler {
	return &IterationHandler{svc: svc}
}

// Create creates an iteration. Every referenced work item must exist.
//
//	@Summary	Create iteration
//	@Tags		iterations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateIterationRequest	true	"Iteration creation request"
//	@Success	201		{object}	IterationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/iterations [post]
func (h *IterationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateIterationRequest](w, r)
	if !ok {
		return
	}
	items, ok := bodyIDs[models.WorkItem](w, "work_item_ids", req.WorkItemIDs)
	if !ok {
		return
	}
	v, err := h.svc.Iteration.Create(r.Context(), req.Title, items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, v.ID().String(), toIterationResponse(v))
}

// Get returns an iteration.
//
//	@Summary	Get iteration
//	@Tags		iterations
//	@Produce	json
//	@Param		id	path		string	true	"Iteration ID"
//	@Success	200	{object}	IterationResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/iterations/{id} [get]
func (h *IterationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Iteration](w, r, "id")
	if !ok {
		return
	}
	v, err := h.svc.Iteration.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toIterationResponse(v))
}

// Delete removes an iteration. Its work items are not affected.
//
//	@Summary	Delete iteration
//	@Tags		iterations
//	@Param		id	path	string	true	"Iteration ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/iterations/{id} [delete]
func (h *IterationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Iteration](w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Iteration.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// AddWorkItem adds a work item to the iteration.
//
//	@Summary	Add work item to iteration
//	@Tags		iterations
//	@Produce	json
//	@Param		id			path		string	true	"Iteration ID"
//	@Param		workItemID	path		string	true	"Work item ID"
//	@Success	200			{object}	IterationResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse
//	@Router		/iterations/{id}/work-items/{workItemID} [put]
func (h *IterationHandler) AddWorkItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Iteration](w, r, "id")
	if !ok {
		return
	}
	item, ok := pathID[models.WorkItem](w, r, "workItemID")
	if !ok {
		return
	}
	v, err := h.svc.Iteration.AddWorkItem(r.Context(), id, item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toIterationResponse(v))
}

// RemoveWorkItem removes a work item from the iteration.
//
//	@Summary	Remove work item from iteration
//	@Tags		iterations
//	@Produce	json
//	@Param		id			path		string	true	"Iteration ID"
//	@Param		workItemID	path		string	true	"Work item ID"
//	@Success	200			{object}	IterationResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/iterations/{id}/work-items/{workItemID} [delete]
func (h *IterationHandler) RemoveWorkItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Iteration](w, r, "id")
	if !ok {
		return
	}
	item, ok := pathID[models.WorkItem](w, r, "workItemID")
	if !ok {
		return
	}
	v, err := h.svc.Iteration.RemoveWorkItem(r.Context(), id, item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toIterationResponse(v))
}
