package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/go-chi/chi/v5"
)

// CatalogService defines the template lookups required by TemplateHandler.
type CatalogService interface {
	// List returns the templates matching category ("" or "all" for every template).
	List(ctx context.Context, category string) ([]models.Template, error)
	// Get returns a single template.
	Get(ctx context.Context, id int) (*models.Template, bool)
}

// TemplateHandler serves the template catalog.
type TemplateHandler struct {
	CatalogService CatalogService
}

// List handles GET /api/templates?category=<c>.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.CatalogService.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, genericFailure)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// Get handles GET /api/templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid template id")
		return
	}
	tpl, ok := h.CatalogService.Get(r.Context(), id)
	if !ok {
		writeFailure(w, http.StatusNotFound, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}
