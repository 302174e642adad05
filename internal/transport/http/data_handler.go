package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesinsights/internal/errors"
)

// DataRoutes serves table loading and inspection.
func (h *Handler) DataRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	r.Post("/sample", h.LoadSample)
	r.Get("/table", h.GetTable)
	r.Get("/classify", h.Classify)
	return r
}

// Upload handles POST /api/data/upload: a multipart form with a single
// "file" field. Rejections (unsupported extension, malformed content, empty
// table) leave any previously loaded table in place.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Limits.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.Limits.MaxUploadBytes); err != nil {
		h.renderError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, apierrors.ErrValidation("file", "A file upload is required"))
		return
	}
	defer file.Close()

	result, err := h.service.LoadFile(header.Filename, file)
	observe(loadsTotal, nil, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// LoadSample handles POST /api/data/sample.
func (h *Handler) LoadSample(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LoadSample()
	observe(loadsTotal, nil, err)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// GetTable handles GET /api/data/table?limit=N, returning a bounded preview.
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.Limits.PreviewRows
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.renderError(w, r, apierrors.ErrValidation("limit", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	page, err := h.service.Page(limit)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// Classify handles GET /api/data/classify: the numeric/temporal/categorical
// split the UI uses to populate its selection widgets.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	class, err := h.service.Classify()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, class)
}
