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

// CreateProjectRequest is the request body for POST /projects.
// Omitted status, priority and methodology keep their defaults.
type CreateProjectRequest struct {
	Title       string    `json:"title"                 example:"Checkout rewrite"`
	Description string    `json:"description,omitempty" example:"Replace the legacy checkout flow."`
	StartsAt    time.Time `json:"starts_at"             example:"2024-02-01T00:00:00Z"`
	EndsAt      time.Time `json:"ends_at"               example:"2024-05-01T00:00:00Z"`
	Status      string    `json:"status,omitempty"      example:"planned"`
	Priority    string    `json:"priority,omitempty"    example:"high"`
	Methodology string    `json:"methodology,omitempty" example:"scrum"`
} // @name CreateProjectRequest

// ProjectResponse is the public view of a project.
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"                    example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string    `json:"title"                 example:"Checkout rewrite"`
	Description string    `json:"description,omitempty" example:"Replace the legacy checkout flow."`
	StartsAt    time.Time `json:"starts_at"             example:"2024-02-01T00:00:00Z"`
	EndsAt      time.Time `json:"ends_at"               example:"2024-05-01T00:00:00Z"`
	Status      string    `json:"status"                example:"planned"`
	Priority    string    `json:"priority"              example:"high"`
	Methodology string    `json:"methodology"           example:"scrum"`
} // @name ProjectResponse

// ProjectListResponse is a page of projects.
type ProjectListResponse struct {
	Items  []ProjectResponse `json:"items"`
	Total  int               `json:"total"  example:"3"`
	Limit  int               `json:"limit"  example:"50"`
	Offset int               `json:"offset" example:"0"`
} // @name ProjectListResponse

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
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

// ProjectHandler serves /projects.
type ProjectHandler struct {
	svc *appsvcs.Services
}

func NewProjectHandler(svc *appsvcs.Services) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create creates a project.
//
//	@Summary		Create project
//	@Description	The time range is required and must end after it starts
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProjectRequest	true	"Project creation request"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProjectRequest](w, r)
	if !ok {
		return
	}
	p, err := h.svc.Project.Create(r.Context(), appsvcs.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.StartsAt,
		End:         req.EndsAt,
		Status:      req.Status,
		Priority:    req.Priority,
		Methodology: req.Methodology,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, p.ID().String(), toProjectResponse(p))
}

// List returns a page of projects.
//
//	@Summary	List projects
//	@Tags		projects
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (max 200)"
//	@Param		offset	query		int	false	"Items to skip"
//	@Success	200		{object}	ProjectListResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := pageOpts(r)
	projects, total, err := h.svc.Project.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}
	httpx.JSON(w, http.StatusOK, ProjectListResponse{Items: items, Total: total, Limit: opts.Limit, Offset: opts.Offset})
}

// Get returns a project.
//
//	@Summary	Get project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	ProjectResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Project](w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.Project.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProjectResponse(p))
}

// Delete removes a project.
//
//	@Summary	Delete project
//	@Tags		projects
//	@Param		id	path	string	true	"Project ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Project](w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Project.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}
