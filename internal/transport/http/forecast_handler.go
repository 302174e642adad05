package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesinsights/internal/errors"
	"salesinsights/internal/forecast"
)

// ForecastRequest is the wire form of a forecast request. DateColumn and
// Frequency are optional together: without a date column the series is
// positional and Frequency is ignored.
type ForecastRequest struct {
	ValueColumn string `json:"value_column" validate:"required"`
	DateColumn  string `json:"date_column"`
	Frequency   string `json:"frequency"`
	Horizon     int    `json:"horizon" validate:"required,min=1"`
}

// ForecastRoutes serves trend forecasting.
func (h *Handler) ForecastRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Forecast)
	return r
}

// Forecast handles POST /api/forecast.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.renderError(w, r, err)
		return
	}
	if req.Horizon > h.cfg.Limits.MaxHorizon {
		h.renderError(w, r, apierrors.ErrValidation("horizon",
			fmt.Sprintf("horizon must not exceed %d", h.cfg.Limits.MaxHorizon)))
		return
	}

	freq := forecast.Monthly
	if req.Frequency != "" {
		parsed, err := forecast.ParseFreq(req.Frequency)
		if err != nil {
			h.renderError(w, r, apierrors.ErrUnknownFrequency)
			return
		}
		freq = parsed
	}

	result, err := h.service.Forecast(forecast.Request{
		ValueColumn: req.ValueColumn,
		DateColumn:  req.DateColumn,
		Freq:        freq,
		Horizon:     req.Horizon,
	})
	observe(operationsTotal, []string{"forecast"}, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
