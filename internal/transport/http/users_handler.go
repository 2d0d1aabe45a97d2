package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shortlyhq/shortly/internal/constants"
	"github.com/shortlyhq/shortly/internal/infrastructure/logger"
	appvalidation "github.com/shortlyhq/shortly/internal/infrastructure/validation"
	"github.com/shortlyhq/shortly/internal/processing/users"
	"github.com/shortlyhq/shortly/pkg/httputils"
	"go.uber.org/zap"
)

type UsersHandler struct {
	svc *users.Service
}

func NewUsersHandler(svc *users.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Tier     string `json:"tier"`
}

func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := appvalidation.Validate(req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserExists):
			httputils.WriteAPIError(w, r, constants.ErrUserExists)
		case errors.Is(err, users.ErrInvalidUsername), errors.Is(err, users.ErrInvalidPassword):
			httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage(err.Error()))
		default:
			logger.Error("failed to register user", zap.Error(err))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessUserCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Tier:     user.Tier,
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Tier     string `json:"tier"`
}

func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := appvalidation.Validate(req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			httputils.WriteAPIError(w, r, constants.ErrInvalidCredentials)
			return
		}
		logger.Error("failed to login user", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLoginOK, loginResponse{
		Token:    token,
		Username: user.Username,
		Tier:     user.Tier,
	})
}
