package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shortlyhq/shortly/internal/config"
	"github.com/shortlyhq/shortly/internal/constants"
	"github.com/shortlyhq/shortly/internal/events"
	"github.com/shortlyhq/shortly/internal/infrastructure/auth"
	"github.com/shortlyhq/shortly/internal/infrastructure/logger"
	appvalidation "github.com/shortlyhq/shortly/internal/infrastructure/validation"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
	"github.com/shortlyhq/shortly/pkg/httputils"
	"go.uber.org/zap"
)

// ClickPublisher delivers redirect click events; nil disables publishing.
type ClickPublisher interface {
	Publish(ctx context.Context, ev events.ClickRecorded) error
}

type LinksHandler struct {
	cfg    *config.Config
	svc    *shortener.Service
	clicks ClickPublisher

	clickTimeout time.Duration
}

func NewLinksHandler(cfg *config.Config, svc *shortener.Service, clicks ClickPublisher) *LinksHandler {
	return &LinksHandler{
		cfg:          cfg,
		svc:          svc,
		clicks:       clicks,
		clickTimeout: 2 * time.Second,
	}
}

type createLinkRequest struct {
	URL string `json:"url" validate:"required,notblank,http_url"`
}

type createLinkResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ShortURL  string    `json:"shortUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *LinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return
	}

	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := appvalidation.Validate(req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidURL)
		return
	}

	link, err := h.svc.Shorten(r.Context(), shortener.ShortenInput{
		OwnerID: identity.UserID,
		Tier:    identity.Tier,
		URL:     req.URL,
	})
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			httputils.WriteAPIError(w, r, constants.ErrInvalidURL)
		case errors.Is(err, shortener.ErrQuotaExceeded):
			httputils.WriteAPIError(w, r, constants.ErrQuotaExceeded)
		case errors.Is(err, shortener.ErrQuotaUnavailable):
			logger.Error("quota store unavailable", zap.Error(err), zap.String("owner_id", identity.UserID))
			httputils.WriteAPIError(w, r, constants.ErrQuotaUnavailable)
		default:
			logger.Error("failed to create link", zap.Error(err), zap.String("owner_id", identity.UserID))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinkCreated, createLinkResponse{
		Token:     link.ShortToken,
		URL:       link.LongURL,
		ShortURL:  strings.TrimRight(h.cfg.Shortener.BaseURL, "/") + "/" + link.ShortToken,
		CreatedAt: link.CreatedAt,
	})
}

type quotaResponse struct {
	Tier        string `json:"tier"`
	Remaining   int64  `json:"remaining"`
	Initialized bool   `json:"initialized"`
}

func (h *LinksHandler) Quota(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return
	}

	status, err := h.svc.RemainingQuota(r.Context(), identity.UserID, identity.Tier)
	if err != nil {
		if errors.Is(err, shortener.ErrQuotaUnavailable) {
			httputils.WriteAPIError(w, r, constants.ErrQuotaUnavailable)
			return
		}
		logger.Error("failed to read quota", zap.Error(err), zap.String("owner_id", identity.UserID))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessQuotaFound, quotaResponse{
		Tier:        status.Tier,
		Remaining:   status.Remaining,
		Initialized: status.Initialized,
	})
}

func (h *LinksHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	link, err := h.svc.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("failed to resolve token", zap.Error(err), zap.String("token", token))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if h.clicks != nil {
		ev := events.ClickRecorded{
			EventID:    uuid.NewString(),
			Token:      link.ShortToken,
			OccurredAt: time.Now().UTC(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), h.clickTimeout)
			defer cancel()
			if err := h.clicks.Publish(ctx, ev); err != nil {
				logger.Warn("failed to publish click", zap.Error(err), zap.String("token", ev.Token))
			}
		}()
	}

	http.Redirect(w, r, link.LongURL, h.cfg.Shortener.RedirectStatus)
}
