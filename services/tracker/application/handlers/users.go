package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/httpx"
	"github.com/ghuser/worktrack/pkg/logger"
	pkgvalidator "github.com/ghuser/worktrack/pkg/validator"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// RegisterUserRequest is the request body for POST /users.
type RegisterUserRequest struct {
	FirstName string `json:"first_name" example:"Grace"`
	LastName  string `json:"last_name"  example:"Hopper"`
	Email     string `json:"email"      example:"grace@example.com"`
	Password  string `json:"password"   example:"correct horse battery"`
} // @name RegisterUserRequest

// SignInRequest is the request body for POST /auth/session.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required" example:"grace@example.com"`
	Password string `json:"password" validate:"required" example:"correct horse battery"`
} // @name SignInRequest

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	FirstName string    `json:"first_name" example:"Grace"`
	LastName  string    `json:"last_name"  example:"Hopper"`
	Email     string    `json:"email"      example:"grace@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name UserResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID().UUID(),
		FirstName: u.FirstName().String(),
		LastName:  u.LastName().String(),
		Email:     u.Email().String(),
		CreatedAt: u.CreatedAt(),
	}
}

// UserHandler serves user registration, lookup and sessions.
type UserHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

// NewUserHandler returns a UserHandler. store holds the sessions started on
// registration and sign-in.
func NewUserHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *UserHandler {
	return &UserHandler{svc: svc, store: store, log: log}
}

// Register creates a user and signs them in.
//
//	@Summary		Register user
//	@Description	Creates a user and starts a session for them
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterUserRequest	true	"User registration request"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterUserRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Register(r.Context(), appsvcs.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := auth.StartSession(h.store, w, r, user.ID().UUID()); err != nil {
		h.log.ErrorContext(r.Context(), "start session after registration", "user_id", user.ID().String(), "error", err)
	}
	httpx.Created(w, r, user.ID().String(), toUserResponse(user))
}

// Get returns a user.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	UserResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID[models.User](w, r, "id")
	if !ok {
		return
	}
	user, err := h.svc.User.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

// SignIn starts a session once the email and password match a registered
// user. Unknown emails and wrong passwords get the same 401.
//
//	@Summary	Start session
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SignInRequest	true	"Sign-in request"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/session [post]
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SignInRequest](w, r)
	if !ok {
		return
	}
	user, err := h.svc.User.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := auth.StartSession(h.store, w, r, user.ID().UUID()); err != nil {
		h.log.ErrorContext(r.Context(), "start session", "user_id", user.ID().String(), "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

// SignOut ends the caller's session.
//
//	@Summary	End session
//	@Tags		auth
//	@Success	204
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/session [delete]
func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := auth.EndSession(h.store, w, r); err != nil {
		h.log.ErrorContext(r.Context(), "end session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	httpx.NoContent(w)
}
