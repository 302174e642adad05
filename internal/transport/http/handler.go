package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"salesinsights/internal/config"
	apierrors "salesinsights/internal/errors"
	"salesinsights/internal/extract"
	"salesinsights/internal/forecast"
	"salesinsights/internal/grid"
	"salesinsights/internal/services"
	"salesinsights/internal/table"
)

// Handler carries the shared dependencies of every route group.
type Handler struct {
	service  *services.Service
	cfg      *config.Config
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler creates the API handler.
func NewHandler(service *services.Service, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "api_handler")),
		validate: validator.New(),
	}
}

// renderError maps core errors onto the API error taxonomy and renders the
// response. Every core failure is recoverable: nothing here touches session
// state, so the previously loaded table and results survive the error.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		// already mapped
	case errors.Is(err, extract.ErrUnsupportedFormat):
		apiErr = apierrors.ErrUnsupportedFormat
	case errors.Is(err, extract.ErrNoTables):
		apiErr = apierrors.ErrNoTables
	case errors.Is(err, grid.ErrEmptyTable):
		apiErr = apierrors.ErrEmptyTable
	case errors.Is(err, grid.ErrNoValidRows):
		apiErr = apierrors.ErrNoValidRows
	case errors.Is(err, table.ErrNoTable):
		apiErr = apierrors.ErrNoTableLoaded
	case errors.Is(err, forecast.ErrInsufficientData):
		apiErr = apierrors.ErrInsufficientData
	case errors.Is(err, forecast.ErrForecastFailed):
		apiErr = apierrors.ForecastError(err)
	default:
		apiErr = apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Request could not be processed", err.Error())
	}

	h.logger.WarnContext(r.Context(), "request failed",
		slog.String("error_code", apiErr.ErrorCode),
		slog.String("error", err.Error()),
	)
	render.Render(w, r, apierrors.NewErrorResponse(apiErr))
}

// decodeAndValidate binds the JSON body into dst and runs struct validation.
func (h *Handler) decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return apierrors.InvalidRequestWithError(err)
	}
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apierrors.ErrValidation(fe.Field(), fe.Tag())
		}
		return apierrors.ErrValidationFailed
	}
	return nil
}
