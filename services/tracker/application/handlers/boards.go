package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// FilterDTO is a board filter on the wire.
type FilterDTO struct {
	Field    string `json:"field"    example:"status"`
	Operator string `json:"operator" example:"neq"`
	Value    string `json:"value"    example:"done"`
} // @name Filter

// OrderByDTO is a board sort key on the wire.
type OrderByDTO struct {
	Field     string `json:"field"               example:"priority"`
	Direction string `json:"direction,omitempty" example:"desc"`
} // @name OrderBy

// CreateBoardRequest is the request body for POST /boards.
type CreateBoardRequest struct {
	Title   string       `json:"title" example:"Open bugs"`
	Filters []FilterDTO  `json:"filters,omitempty"`
	OrderBy []OrderByDTO `json:"order_by,omitempty"`
} // @name CreateBoardRequest

// BoardResponse is the public view of a board.
type BoardResponse struct {
	ID      uuid.UUID    `json:"id"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Title   string       `json:"title" example:"Open bugs"`
	Filters []FilterDTO  `json:"filters"`
	OrderBy []OrderByDTO `json:"order_by"`
} // @name BoardResponse

// BoardWorkItemsResponse lists the work items a board shows, in board order.
type BoardWorkItemsResponse struct {
	Items []WorkItemResponse `json:"items"`
} // @name BoardWorkItemsResponse

func toBoardResponse(b *models.Board) BoardResponse {
	resp := BoardResponse{
		ID:      b.ID().UUID(),
		Title:   b.Title().String(),
		Filters: make([]FilterDTO, 0, len(b.Filters())),
		OrderBy: make([]OrderByDTO, 0, len(b.OrderBy())),
	}
	for _, f := range b.Filters() {
		resp.Filters = append(resp.Filters, FilterDTO{Field: string(f.Field()), Operator: string(f.Operator()), Value: f.Value()})
	}
	for _, o := range b.OrderBy() {
		resp.OrderBy = append(resp.OrderBy, OrderByDTO{Field: string(o.Field()), Direction: string(o.Direction())})
	}
	return resp
}

func (f FilterDTO) input() appsvcs.FilterInput {
	return appsvcs.FilterInput{Field: f.Field, Operator: f.Operator, Value: f.Value}
}

func (o OrderByDTO) input() appsvcs.OrderByInput {
	return appsvcs.OrderByInput{Field: o.Field, Direction: o.Direction}
}

// BoardHandler serves /boards.
type BoardHandler struct {
	svc *appsvcs.Services
}

func NewBoardHandler(svc *appsvcs.Services) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// Create creates a board.
//
//	@Summary		Create board
//	@Description	Creates a board; invalid filters and sort keys are reported together with the title
//	@Tags			boards
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBoardRequest	true	"Board creation request"
//	@Success		201		{object}	BoardResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/boards [post]
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateBoardRequest](w, r)
	if !ok {
		return
	}
	in := appsvcs.CreateBoardInput{Title: req.Title}
	for _, f := range req.Filters {
		in.Filters = append(in.Filters, f.input())
	}
	for _, o := range req.OrderBy {
		in.OrderBy = append(in.OrderBy, o.input())
	}

	board, err := h.svc.Board.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, r, board.ID().String(), toBoardResponse(board))
}

// Get returns a board.
//
//	@Summary	Get board
//	@Tags		boards
//	@Produce	json
//	@Param		id	path		string	true	"Board ID"
//	@Success	200	{object}	BoardResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/boards/{id} [get]
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Board](w, r, "id")
	if !ok {
		return
	}
	board, err := h.svc.Board.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBoardResponse(board))
}

// Delete removes a board.
//
//	@Summary	Delete board
//	@Tags		boards
//	@Param		id	path	string	true	"Board ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/boards/{id} [delete]
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Board](w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Board.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// AddFilter appends a filter. Duplicates are allowed.
//
//	@Summary	Add board filter
//	@Tags		boards
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Board ID"
//	@Param		request	body		FilterDTO	true	"Filter"
//	@Success	200		{object}	BoardResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/boards/{id}/filters [post]
func (h *BoardHandler) AddFilter(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, h.svc.Board.AddFilter)
}

// RemoveFilter removes the first matching filter.
//
//	@Summary	Remove board filter
//	@Tags		boards
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Board ID"
//	@Param		request	body		FilterDTO	true	"Filter"
//	@Success	200		{object}	BoardResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/boards/{id}/filters [delete]
func (h *BoardHandler) RemoveFilter(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, h.svc.Board.RemoveFilter)
}

// AddOrderBy appends a sort key. Duplicates are allowed.
//
//	@Summary	Add board sort key
//	@Tags		boards
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Board ID"
//	@Param		request	body		OrderByDTO	true	"Sort key"
//	@Success	200		{object}	BoardResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/boards/{id}/order-by [post]
func (h *BoardHandler) AddOrderBy(w http.ResponseWriter, r *http.Request) {
	h.withOrderBy(w, r, h.svc.Board.AddOrderBy)
}

// RemoveOrderBy removes the first matching sort key.
//
//	@Summary	Remove board sort key
//	@Tags		boards
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Board ID"
//	@Param		request	body		OrderByDTO	true	"Sort key"
//	@Success	200		{object}	BoardResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/boards/{id}/order-by [delete]
func (h *BoardHandler) RemoveOrderBy(w http.ResponseWriter, r *http.Request) {
	h.withOrderBy(w, r, h.svc.Board.RemoveOrderBy)
}

// WorkItems renders the board.
//
//	@Summary		Board view
//	@Description	Work items matching every filter, sorted by each sort key in turn
//	@Tags			boards
//	@Produce		json
//	@Param			id	path		string	true	"Board ID"
//	@Success		200	{object}	BoardWorkItemsResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/boards/{id}/work-items [get]
func (h *BoardHandler) WorkItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.Board](w, r, "id")
	if !ok {
		return
	}
	items, err := h.svc.Board.WorkItems(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, BoardWorkItemsResponse{Items: toWorkItemResponses(items)})
}

func (h *BoardHandler) withFilter(w http.ResponseWriter, r *http.Request, apply func(context.Context, models.ID[models.Board], appsvcs.FilterInput) (*models.Board, error)) {
	id, ok := pathID[models.Board](w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[FilterDTO](w, r)
	if !ok {
		return
	}
	board, err := apply(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) withOrderBy(w http.ResponseWriter, r *http.Request, apply func(context.Context, models.ID[models.Board], appsvcs.OrderByInput) (*models.Board, error)) {
	id, ok := pathID[models.Board](w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[OrderByDTO](w, r)
	if !ok {
		return
	}
	board, err := apply(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBoardResponse(board))
}
