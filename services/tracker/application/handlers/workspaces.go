package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// CreateWorkspaceRequest is the request body for POST /workspaces.
// An omitted owner defaults to the caller.
type CreateWorkspaceRequest struct {
	Title   string `json:"title"              example:"Platform team"`
	OwnerID string `json:"owner_id,omitempty" validate:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name CreateWorkspaceRequest

// WorkspaceResponse is the public view of a workspace.
type WorkspaceResponse struct {
	ID          uuid.UUID   `json:"id"       example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string      `json:"title"    example:"Platform team"`
	OwnerID     uuid.UUID   `json:"owner_id" example:"123e4567-e89b-12d3-a456-426614174000"`
	ProjectIDs  []uuid.UUID `json:"project_ids"`
	DocumentIDs []uuid.UUID `json:"document_ids"`
	ContactIDs  []uuid.UUID `json:"contact_ids"`
} // @name WorkspaceResponse

func toWorkspaceResponse(ws *models.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID().UUID(),
		Title:       ws.Title().String(),
		OwnerID:     ws.Owner().UUID(),
		ProjectIDs:  models.UUIDs(ws.Projects()),
		DocumentIDs: models.UUIDs(ws.Documents()),
		ContactIDs:  models.UUIDs(ws.Contacts()),
	}
}

// WorkspaceHandler serves /workspaces.
type WorkspaceHandler struct {
	svc *appsvcs.Services
}

func NewWorkspaceHandler(svc *appsvcs.Services) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc}
}

// Create creates an empty workspace.
//
//	@Summary		Create workspace
//	@Description	The owner defaults to the caller
//	@Tags			workspaces
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateWorkspaceRequest	true	"Workspace creation request"
//	@Success		201		{object}	WorkspaceResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/workspaces [post]
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateWorkspaceRequest](w, r)
	if !ok {
		return
	}
	var owner models.ID[models.User]
	if req.OwnerID == "" {
		caller, err := auth.UserIDFromCtx(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		owner = models.IDFrom[models.User](caller)
	} else if owner, ok = bodyID[models.User](w, "owner_id", req.OwnerID); !ok {
		return
	}

	ws, err := h.svc.Workspace.Create(r.Context(), req.Title, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, ws.ID().String(), toWorkspaceResponse(ws))
}

// Get returns a workspace.
//
//	@Summary	Get workspace
//	@Tags		workspaces
//	@Produce	json
//	@Param		id	path		string	true	"Workspace ID"
//	@Success	200	{object}	WorkspaceResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/workspaces/{id} [get]
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Workspace](w, r, "id")
	if !ok {
		return
	}
	ws, err := h.svc.Workspace.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// AddResource adds a project, document or contact to the workspace.
//
//	@Summary	Add workspace resource
//	@Tags		workspaces
//	@Produce	json
//	@Param		id			path		string	true	"Workspace ID"
//	@Param		kind		path		string	true	"Resource kind"	Enums(projects, documents, contacts)
//	@Param		resourceID	path		string	true	"Resource ID"
//	@Success	200			{object}	WorkspaceResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse
//	@Failure	422			{object}	ErrorResponse
//	@Router		/workspaces/{id}/{kind}/{resourceID} [put]
func (h *WorkspaceHandler) AddResource(w http.ResponseWriter, r *http.Request) {
	h.withResource(w, r, h.svc.Workspace.AddResource)
}

// RemoveResource removes a project, document or contact from the workspace.
//
//	@Summary	Remove workspace resource
//	@Tags		workspaces
//	@Produce	json
//	@Param		id			path		string	true	"Workspace ID"
//	@Param		kind		path		string	true	"Resource kind"	Enums(projects, documents, contacts)
//	@Param		resourceID	path		string	true	"Resource ID"
//	@Success	200			{object}	WorkspaceResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	422			{object}	ErrorResponse
//	@Router		/workspaces/{id}/{kind}/{resourceID} [delete]
func (h *WorkspaceHandler) RemoveResource(w http.ResponseWriter, r *http.Request) {
	h.withResource(w, r, h.svc.Workspace.RemoveResource)
}

func (h *WorkspaceHandler) withResource(w http.ResponseWriter, r *http.Request, apply func(context.Context, models.ID[models.Workspace], string, uuid.UUID) (*models.Workspace, error)) {
	id, ok := pathID[models.Workspace](w, r, "id")
	if !ok {
		return
	}
	resource, err := uuid.Parse(chi.URLParam(r, "resourceID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid resourceID")
		return
	}
	ws, err := apply(r.Context(), id, chi.URLParam(r, "kind"), resource)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toWorkspaceResponse(ws))
}
