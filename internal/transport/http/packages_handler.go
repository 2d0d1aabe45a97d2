package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shortlyhq/shortly/internal/constants"
	"github.com/shortlyhq/shortly/internal/infrastructure/logger"
	"github.com/shortlyhq/shortly/internal/processing/billing"
	"github.com/shortlyhq/shortly/pkg/httputils"
	"go.uber.org/zap"
)

type PackagesHandler struct {
	svc *billing.Service
}

func NewPackagesHandler(svc *billing.Service) *PackagesHandler {
	return &PackagesHandler{svc: svc}
}

type packageResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	MaxURLs            int       `json:"maxUrls"`
	Price              float64   `json:"price"`
	TotalSubscriptions int       `json:"totalSubscriptions"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toPackageResponse(pkg *billing.Package) packageResponse {
	return packageResponse{
		ID:                 pkg.ID,
		Name:               pkg.Name,
		MaxURLs:            pkg.MaxURLs,
		Price:              pkg.Price,
		TotalSubscriptions: pkg.TotalSubscriptions,
		CreatedAt:          pkg.CreatedAt,
	}
}

type createPackageRequest struct {
	Name    string  `json:"name"`
	MaxURLs int     `json:"maxUrls"`
	Price   float64 `json:"price"`
}

func (h *PackagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}

	pkg, err := h.svc.CreatePackage(r.Context(), billing.CreatePackageInput{
		Name:    req.Name,
		MaxURLs: req.MaxURLs,
		Price:   req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidPackage):
			httputils.WriteAPIError(w, r, constants.ErrInvalidPackage)
		case errors.Is(err, billing.ErrPackageExists):
			httputils.WriteAPIError(w, r, constants.ErrInvalidPackage.WithMessage("Subscription package already exists"))
		default:
			logger.Error("failed to create package", zap.Error(err))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessPackageCreated, toPackageResponse(pkg))
}

func (h *PackagesHandler) List(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.svc.ListPackages(r.Context())
	if err != nil {
		logger.Error("failed to list packages", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
		return
	}

	out := make([]packageResponse, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, toPackageResponse(pkg))
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessPackagesFound, out)
}

type updatePackageRequest struct {
	Name    *string  `json:"name,omitempty"`
	MaxURLs *int     `json:"maxUrls,omitempty"`
	Price   *float64 `json:"price,omitempty"`
}

func (h *PackagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}

	pkg, err := h.svc.UpdatePackage(r.Context(), id, billing.UpdatePackageInput{
		Name:    req.Name,
		MaxURLs: req.MaxURLs,
		Price:   req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrPackageNotFound):
			httputils.WriteAPIError(w, r, constants.ErrPackageNotFound)
		case errors.Is(err, billing.ErrInvalidPackage):
			httputils.WriteAPIError(w, r, constants.ErrInvalidPackage)
		default:
			logger.Error("failed to update package", zap.Error(err), zap.String("package_id", id))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessPackageUpdated, toPackageResponse(pkg))
}
