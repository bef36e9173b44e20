package http_handlers

import (
	"net/http"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/application/auth"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/logger"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/dto"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/middleware"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
		Ext:      req.Ext(),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.Profile.ID).
		Str("role", string(res.Profile.Role)).
		Msg("user_registered")

	response.Created(w, dto.AuthData{
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
		User:      dto.NewUserView(res.Profile),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.Profile.ID).
		Msg("user_logged_in")

	response.OK(w, dto.AuthData{
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
		User:      dto.NewUserView(res.Profile),
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	p, err := h.svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.ProfileData{User: dto.NewUserView(p)})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Ext())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.ProfileData{User: dto.NewUserView(p)})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.PasswordChangeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", claims.UserID).
		Msg("password_changed")

	response.NoContent(w)
}

// ListUsers is the admin console's user index.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	views := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, dto.NewIdentityView(u))
	}
	response.OK(w, dto.UsersData{Users: views})
}
