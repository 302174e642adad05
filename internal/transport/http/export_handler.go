package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salesinsights/internal/analytics"
	apierrors "salesinsights/internal/errors"
	"salesinsights/internal/i18n"
)

// InsightsRoutes serves the automated keyword insights.
func (h *Handler) InsightsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Insights)
	return r
}

// Insights handles GET /api/insights.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Insights()
	observe(operationsTotal, []string{"insights"}, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

// ExportRoutes serves report downloads. These write binary bodies, so they
// sit outside the JSON content-type group.
func (h *Handler) ExportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/excel", h.ExportExcel)
	r.Get("/html", h.ExportHTML)
	r.Get("/csv", h.ExportCSV)
	r.Post("/pivot", h.ExportPivot)
	return r
}

func (h *Handler) exportLang(r *http.Request) string {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = h.cfg.Limits.DefaultLanguage
	}
	for _, known := range i18n.Languages() {
		if lang == known {
			return lang
		}
	}
	return i18n.DefaultLanguage
}

// ExportExcel handles GET /api/export/excel?lang=.
func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sales_report.xlsx"`)
	err := h.service.ExportExcel(w, h.exportLang(r), h.cfg.Limits.ExportHeadRows)
	exportsTotal.WithLabelValues("excel").Inc()
	if err != nil {
		h.exportError(w, r, err)
	}
}

// ExportHTML handles GET /api/export/html?lang=. The printable HTML report
// doubles as the PDF download path via the browser's print dialog.
func (h *Handler) ExportHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.service.ExportHTML(w, h.exportLang(r), h.cfg.Limits.ExportHeadRows)
	exportsTotal.WithLabelValues("html").Inc()
	if err != nil {
		h.exportError(w, r, err)
	}
}

// ExportCSV handles GET /api/export/csv.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sales_data.csv"`)
	err := h.service.ExportCSV(w)
	exportsTotal.WithLabelValues("csv").Inc()
	if err != nil {
		h.exportError(w, r, err)
	}
}

// ExportPivot handles POST /api/export/pivot. It takes the same body as the
// pivot endpoint and downloads the rendered result as a workbook.
func (h *Handler) ExportPivot(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sales_pivot.xlsx"`)
	err = h.service.ExportPivotExcel(w, analytics.PivotSpec{
		Rows:   req.Rows,
		Cols:   req.Cols,
		Values: req.Values,
		Agg:    agg,
	})
	exportsTotal.WithLabelValues("pivot").Inc()
	if err != nil {
		if errors.Is(err, analytics.ErrNoValueColumns) {
			h.exportError(w, r, apierrors.PivotWarning(req.Agg))
			return
		}
		h.exportError(w, r, err)
	}
}

// exportError reports failures that may occur after the response has begun
// streaming. When nothing has been written yet, the normal error mapping
// applies; otherwise the most that can be done is to log.
func (h *Handler) exportError(w http.ResponseWriter, r *http.Request, err error) {
	if rw, ok := w.(interface{ BytesWritten() int }); ok && rw.BytesWritten() > 0 {
		h.logger.ErrorContext(r.Context(), "export failed mid-stream", "error", err)
		return
	}
	w.Header().Del("Content-Disposition")
	w.Header().Set("Content-Type", "application/json")
	h.renderError(w, r, err)
}
