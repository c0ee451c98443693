package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// CreateMilestoneRequest is the request body for POST /milestones.
type CreateMilestoneRequest struct {
	Title       string   `json:"title"                   example:"Public beta"`
	WorkItemIDs []string `json:"work_item_ids,omitempty" validate:"omitempty,dive,uuid"`
} // @name CreateMilestoneRequest

// MilestoneResponse is the public view of a milestone.
type MilestoneResponse struct {
	ID          uuid.UUID   `json:"id"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string      `json:"title" example:"Public beta"`
	WorkItemIDs []uuid.UUID `json:"work_item_ids"`
} // @name MilestoneResponse

func toMilestoneResponse(v *models.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          v.ID().UUID(),
		Title:       v.Title().String(),
		WorkItemIDs: models.UUIDs(v.WorkItems()),
	}
}

// MilestoneHandler serves /milestones.
type MilestoneHandler struct {
	svc *appsvcs.Services
}

func NewMilestoneHandler(svc *appsvcs.Services) *MilestoneHandler {
	return &MilestoneHandler{svc: svc}
}

// Create creates a milestone. Every referenced work item must exist.
//
//	@Summary	Create milestone
//	@Tags		milestones
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateMilestoneRequest	true	"Milestone creation request"
//	@Success	201		{object}	MilestoneResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/milestones [post]
func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateMilestoneRequest](w, r)
	if !ok {
		return
	}
	items, ok := bodyIDs[models.WorkItem](w, "work_item_ids", req.WorkItemIDs)
	if !ok {
		return
	}
	v, err := h.svc.Milestone.Create(r.Context(), req.Title, items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, v.ID().String(), toMilestoneResponse(v))
}

// Get returns a milestone.
//
//	@Summary	Get milestone
//	@Tags		milestones
//	@Produce	json
//	@Param		id	path		string	true	"Milestone ID"
//	@Success	200	{object}	MilestoneResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/milestones/{id} [get]
func (h *MilestoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Milestone](w, r, "id")
	if !ok {
		return
	}
	v, err := h.svc.Milestone.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toMilestoneResponse(v))
}

// Delete removes a milestone. Its work items are not affected.
//
//	@Summary	Delete milestone
//	@Tags		milestones
//	@Param		id	path	string	true	"Milestone ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/milestones/{id} [delete]
func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Milestone](w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Milestone.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// AddWorkItem adds a work item to the milestone.
//
//	@Summary	Add work item to milestone
//	@Tags		milestones
//	@Produce	json
//	@Param		id			path		string	true	"Milestone ID"
//	@Param		workItemID	path		string	true	"Work item ID"
//	@Success	200			{object}	MilestoneResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse
//	@Router		/milestones/{id}/work-items/{workItemID} [put]
func (h *MilestoneHandler) AddWorkItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Milestone](w, r, "id")
	if !ok {
		return
	}
	item, ok := pathID[models.WorkItem](w, r, "workItemID")
	if !ok {
		return
	}
	v, err := h.svc.Milestone.AddWorkItem(r.Context(), id, item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toMilestoneResponse(v))
}

// RemoveWorkItem removes a work item from the milestone.
//
//	@Summary	Remove work item from milestone
//	@Tags		milestones
//	@Produce	json
//	@Param		id			path		string	true	"Milestone ID"
//	@Param		workItemID	path		string	true	"Work item ID"
//	@Success	200			{object}	MilestoneResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/milestones/{id}/work-items/{workItemID} [delete]
func (h *MilestoneHandler) RemoveWorkItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Milestone](w, r, "id")
	if !ok {
		return
	}
	item, ok := pathID[models.WorkItem](w, r, "workItemID")
	if !ok {
		return
	}
	v, err := h.svc.Milestone.RemoveWorkItem(r.Context(), id, item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toMilestoneResponse(v))
}
