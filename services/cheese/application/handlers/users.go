package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ghuser/cheeseshop/pkg/errhttp"
	"github.com/ghuser/cheeseshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cheeseshop/pkg/validator"
	appsvcs "github.com/ghuser/cheeseshop/services/cheese/application/services"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
)

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=180" example:"cheesehead@example.com"`
	Username string `json:"username" validate:"notblank" example:"cheesehead"`
} // @name CreateUserRequest

// UserResponse is the public representation of a listing owner.
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"cheesehead@example.com"`
	Username  string    `json:"username" example:"cheesehead"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
} // @name UserResponse

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username.String(),
		CreatedAt: u.CreatedAt,
	}
}

// PostUserHandler handles POST /users.
type PostUserHandler struct {
	svc *appsvcs.Services
}

// NewPostUserHandler returns a PostUserHandler backed by the given services.
func NewPostUserHandler(svc *appsvcs.Services) *PostUserHandler {
	return &PostUserHandler{svc: svc}
}

// Execute registers a user who can then own listings.
//
//	@Summary	Create user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateUserRequest	true	"User to create"
//	@Success	201		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ValidationErrorResponse
//	@Router		/users [post]
func (h *PostUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateUserRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.Users.Create(r.Context(), req.Email, req.Username)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", user.ID))
	httpx.JSON(w, http.StatusCreated, userResponse(user))
}

// GetUserHandler handles GET /users/{id}.
type GetUserHandler struct {
	svc *appsvcs.Services
}

// NewGetUserHandler returns a GetUserHandler backed by the given services.
func NewGetUserHandler(svc *appsvcs.Services) *GetUserHandler {
	return &GetUserHandler{svc: svc}
}

// Execute returns a single user.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (h *GetUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, cheesedomain.ErrUserNotFound)
	if !ok {
		return
	}

	user, err := h.svc.Users.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, userResponse(user))
}
