package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// CreateOrganisationRequest is the request body for POST /organisations.
// When OwnerIDs is empty the caller becomes the only owner.
type CreateOrganisationRequest struct {
	Name     string   `json:"name"                example:"Acme Corp"`
	OwnerIDs []string `json:"owner_ids,omitempty" validate:"omitempty,dive,uuid"`
} // @name CreateOrganisationRequest

// OrganisationResponse is the public view of an organisation.
type OrganisationResponse struct {
	ID       uuid.UUID   `json:"id"   example:"123e4567-e89b-12d3-a456-426614174000"`
	Name     string      `json:"name" example:"Acme Corp"`
	OwnerIDs []uuid.UUID `json:"owner_ids"`
} // @name OrganisationResponse

func toOrganisationResponse(o *models.Organisation) OrganisationResponse {
	return OrganisationResponse{
		ID:       o.ID().UUID(),
		Name:     o.Name().String(),
		OwnerIDs: models.UUIDs(o.Owners()),
	}
}

// OrganisationHandler serves /organisations.
type OrganisationHandler struct {
	svc *appsvcs.Services
}

func NewOrganisationHandler(svc *appsvcs.Services) *OrganisationHandler {
	return &OrganisationHandler{svc: svc}
}

// Create creates an organisation.
//
//	@Summary		Create organisation
//	@Description	Owners default to the caller
//	@Tags			organisations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrganisationRequest	true	"Organisation creation request"
//	@Success		201		{object}	OrganisationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/organisations [post]
func (h *OrganisationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrganisationRequest](w, r)
	if !ok {
		return
	}
	owners, ok := bodyIDs[models.User](w, "owner_ids", req.OwnerIDs)
	if !ok {
		return
	}
	if len(owners) == 0 {
		caller, err := auth.UserIDFromCtx(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		owners = append(owners, models.IDFrom[models.User](caller))
	}

	org, err := h.svc.Organisation.Create(r.Context(), req.Name, owners)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, org.ID().String(), toOrganisationResponse(org))
}

// Get returns an organisation.
//
//	@Summary	Get organisation
//	@Tags		organisations
//	@Produce	json
//	@Param		id	path		string	true	"Organisation ID"
//	@Success	200	{object}	OrganisationResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/organisations/{id} [get]
func (h *OrganisationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Organisation](w, r, "id")
	if !ok {
		return
	}
	org, err := h.svc.Organisation.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrganisationResponse(org))
}

// AddOwner adds an owner.
//
//	@Summary	Add organisation owner
//	@Tags		organisations
//	@Produce	json
//	@Param		id		path		string	true	"Organisation ID"
//	@Param		userID	path		string	true	"User ID"
//	@Success	200		{object}	OrganisationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/organisations/{id}/owners/{userID} [put]
func (h *OrganisationHandler) AddOwner(w http.ResponseWriter, r *http.Request) {
	h.withOwner(w, r, h.svc.Organisation.AddOwner)
}

// RemoveOwner removes an owner.
//
//	@Summary	Remove organisation owner
//	@Tags		organisations
//	@Produce	json
//	@Param		id		path		string	true	"Organisation ID"
//	@Param		userID	path		string	true	"User ID"
//	@Success	200		{object}	OrganisationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/organisations/{id}/owners/{userID} [delete]
func (h *OrganisationHandler) RemoveOwner(w http.ResponseWriter, r *http.Request) {
	h.withOwner(w, r, h.svc.Organisation.RemoveOwner)
}

func (h *OrganisationHandler) withOwner(w http.ResponseWriter, r *http.Request, apply func(context.Context, models.ID[models.Organisation], models.ID[models.User]) (*models.Organisation, error)) {
	id, ok := pathID[models.Organisation](w, r, "id")
	if !ok {
		return
	}
	user, ok := pathID[models.User](w, r, "userID")
	if !ok {
		return
	}
	org, err := apply(r.Context(), id, user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrganisationResponse(org))
}
