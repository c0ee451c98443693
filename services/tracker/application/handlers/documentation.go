package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// CreateDocumentationRequest is the request body for POST /documentation.
type CreateDocumentationRequest struct {
	Title  string `json:"title"  example:"Onboarding guide"`
	Format string `json:"format" example:".md"`
} // @name CreateDocumentationRequest

// DocumentationResponse is the public view of a documentation record.
type DocumentationResponse struct {
	ID         uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Title      string    `json:"title"       example:"Onboarding guide"`
	Format     string    `json:"format"      example:".md"`
	HasContent bool      `json:"has_content" example:"true"`
} // @name DocumentationResponse

// ContentURLResponse is a presigned download link.
type ContentURLResponse struct {
	URL       string `json:"url"        example:"https://bucket.s3.amazonaws.com/documentation/123e4567.md?X-Amz-Signature=..."`
	ExpiresIn int    `json:"expires_in" example:"900"`
} // @name ContentURLResponse

func toDocumentationResponse(d *models.Documentation) DocumentationResponse {
	return DocumentationResponse{
		ID:         d.ID().UUID(),
		Title:      d.Title().String(),
		Format:     d.Format().String(),
		HasContent: d.HasContent(),
	}
}

// DocumentationHandler serves /documentation.
type DocumentationHandler struct {
	svc *appsvcs.Services
}

func NewDocumentationHandler(svc *appsvcs.Services) *DocumentationHandler {
	return &DocumentationHandler{svc: svc}
}

// Create creates a documentation record without content.
//
//	@Summary	Create documentation
//	@Tags		documentation
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateDocumentationRequest	true	"Documentation creation request"
//	@Success	201		{object}	DocumentationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/documentation [post]
func (h *DocumentationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateDocumentationRequest](w, r)
	if !ok {
		return
	}
	d, err := h.svc.Documentation.Create(r.Context(), req.Title, req.Format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, d.ID().String(), toDocumentationResponse(d))
}

// Get returns a documentation record.
//
//	@Summary	Get documentation
//	@Tags		documentation
//	@Produce	json
//	@Param		id	path		string	true	"Documentation ID"
//	@Success	200	{object}	DocumentationResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/documentation/{id} [get]
func (h *DocumentationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Documentation](w, r, "id")
	if !ok {
		return
	}
	d, err := h.svc.Documentation.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDocumentationResponse(d))
}

// Delete removes a documentation record and schedules removal of its content.
//
//	@Summary	Delete documentation
//	@Tags		documentation
//	@Param		id	path	string	true	"Documentation ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/documentation/{id} [delete]
func (h *DocumentationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Documentation](w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Documentation.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// UploadContent stores the raw request body as the documentation content,
// replacing any previous upload.
//
//	@Summary		Upload documentation content
//	@Description	The body is stored as-is; Content-Type defaults from the documentation format
//	@Tags			documentation
//	@Accept			octet-stream
//	@Produce		json
//	@Param			id		path		string	true	"Documentation ID"
//	@Param			content	body		string	true	"Raw content"
//	@Success		200		{object}	DocumentationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/documentation/{id}/content [put]
func (h *DocumentationHandler) UploadContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Documentation](w, r, "id")
	if !ok {
		return
	}
	d, err := h.svc.Documentation.UploadContent(r.Context(), id, r.Body, r.Header.Get("Content-Type"), r.ContentLength)
	if err != nil {
		h.writeContentError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDocumentationResponse(d))
}

// ContentURL returns a short-lived download link for the stored content.
//
//	@Summary	Documentation content URL
//	@Tags		documentation
//	@Produce	json
//	@Param		id	path		string	true	"Documentation ID"
//	@Success	200	{object}	ContentURLResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/documentation/{id}/content-url [get]
func (h *DocumentationHandler) ContentURL(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Documentation](w, r, "id")
	if !ok {
		return
	}
	url, err := h.svc.Documentation.ContentURL(r.Context(), id)
	if err != nil {
		h.writeContentError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ContentURLResponse{
		URL:       url,
		ExpiresIn: int(appsvcs.ContentURLExpiry.Seconds()),
	})
}

func (h *DocumentationHandler) writeContentError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, appsvcs.ErrContentStoreUnavailable) {
		httpx.JSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeError(w, r, err)
}
