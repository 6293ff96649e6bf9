package service

import (
	"context"

	"github.com/atinyakov/LocalSites/internal/models"
)

// CatalogRepository defines the read operations on the template catalog.
type CatalogRepository interface {
	// ListTemplates returns every template in catalog order.
	ListTemplates(ctx context.Context) ([]models.Template, error)
	// GetTemplate looks a template up by id.
	GetTemplate(ctx context.Context, id int) (*models.Template, bool)
}

// CatalogService filters the template catalog.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService constructs a CatalogService over repo.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns the templates whose category equals category exactly.
// An empty category or "all" returns the whole catalog; an unknown
// category yields an empty, non-nil slice.
func (s *CatalogService) List(ctx context.Context, category string) ([]models.Template, error) {
	all, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return all, nil
	}

	filter := models.Category(category)
	out := make([]models.Template, 0, len(all))
	for _, t := range all {
		if filter.Matches(t.Category) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Get returns the template with the given id.
func (s *CatalogService) Get(ctx context.Context, id int) (*models.Template, bool) {
	return s.repo.GetTemplate(ctx, id)
}
