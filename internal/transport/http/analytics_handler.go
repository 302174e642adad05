package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salesinsights/internal/analytics"
	apierrors "salesinsights/internal/errors"
)

// TotalsRequest selects the numeric columns to total.
type TotalsRequest struct {
	Columns []string `json:"columns" validate:"required,min=1,dive,required"`
}

// PivotRequest is the wire form of a pivot specification.
type PivotRequest struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Values []string `json:"values"`
	Agg    string   `json:"agg" validate:"required"`
}

// AnalyticsRoutes serves totals, descriptive stats, correlation and pivot.
func (h *Handler) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/totals", h.Totals)
	r.Get("/stats", h.Stats)
	r.Get("/correlation", h.Correlation)
	r.Post("/pivot", h.Pivot)
	return r
}

// Totals handles POST /api/analytics/totals.
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	var req TotalsRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.renderError(w, r, err)
		return
	}
	result, err := h.service.Totals(req.Columns)
	observe(operationsTotal, []string{"totals"}, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// Stats handles GET /api/analytics/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Stats()
	observe(operationsTotal, []string{"stats"}, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// Correlation handles GET /api/analytics/correlation.
func (h *Handler) Correlation(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.service.Correlation()
	observe(operationsTotal, []string{"correlation"}, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, matrix)
}

// Pivot handles POST /api/analytics/pivot. Requests with a non-count
// aggregation and no value columns are rejected before any computation.
func (h *Handler) Pivot(w http.ResponseWriter, r *http.Request) {
	var req PivotRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.renderError(w, r, err)
		return
	}
	agg, err := analytics.ParseAgg(req.Agg)
	if err != nil {
		h.renderError(w, r, apierrors.ErrUnknownAggregation)
		return
	}

	result, err := h.service.Pivot(analytics.PivotSpec{
		Rows:   req.Rows,
		Cols:   req.Cols,
		Values: req.Values,
		Agg:    agg,
	})
	observe(operationsTotal, []string{"pivot"}, err)
	if err != nil {
		if errors.Is(err, analytics.ErrNoValueColumns) {
			h.renderError(w, r, apierrors.PivotWarning(req.Agg))
			return
		}
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
