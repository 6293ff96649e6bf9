// Package repository provides persistence implementations for the
// template catalog and the contact inbox.
package repository

import (
	"context"
	"slices"

	"github.com/atinyakov/LocalSites/internal/models"
)

// CatalogRepository serves a fixed, immutable template catalog.
type CatalogRepository struct {
	templates []models.Template
}

// NewCatalogRepository creates a CatalogRepository over the given
// templates. A nil slice selects DefaultCatalog.
func NewCatalogRepository(templates []models.Template) *CatalogRepository {
	if templates == nil {
		templates = DefaultCatalog()
	}
	return &CatalogRepository{templates: cloneTemplates(templates)}
}

// ListTemplates returns a copy of every template in catalog order.
func (r *CatalogRepository) ListTemplates(ctx context.Context) ([]models.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneTemplates(r.templates), nil
}

// GetTemplate returns the template with the given id.
func (r *CatalogRepository) GetTemplate(ctx context.Context, id int) (*models.Template, bool) {
	for _, t := range r.templates {
		if t.ID == id {
			out := t
			out.Features = slices.Clone(t.Features)
			return &out, true
		}
	}
	return nil, false
}

func cloneTemplates(in []models.Template) []models.Template {
	out := make([]models.Template, len(in))
	for i, t := range in {
		out[i] = t
		out[i].Features = slices.Clone(t.Features)
	}
	return out
}

// DefaultCatalog returns the built-in LocalSites Pro template catalog.
func DefaultCatalog() []models.Template {
	return []models.Template{
		{
			ID:          1,
			Name:        "Italian Restaurant",
			Category:    models.CategoryRestaurant,
			Description: "Perfect for restaurants, cafes, and food businesses",
			ImageURL:    "https://via.placeholder.com/300x200/FF6B35/FFFFFF?text=Restaurant+Template",
			Features:    []string{"Online Menu", "Reservations", "Gallery", "Contact"},
		},
		{
			ID:          2,
			Name:        "Dental Practice",
			Category:    models.CategoryMedical,
			Description: "Ideal for dentists, doctors, and healthcare providers",
			ImageURL:    "https://via.placeholder.com/300x200/2E86AB/FFFFFF?text=Medical+Template",
			Features:    []string{"Appointments", "Services", "Staff", "Insurance"},
		},
		{
			ID:          3,
			Name:        "Auto Repair Shop",
			Category:    models.CategoryAutomotive,
			Description: "Great for mechanics, car dealers, and auto services",
			ImageURL:    "https://via.placeholder.com/300x200/F18F01/FFFFFF?text=Auto+Repair+Template",
			Features:    []string{"Services", "Estimates", "Gallery", "Reviews"},
		},
		{
			ID:          4,
			Name:        "Plumbing Services",
			Category:    models.CategoryHomeServices,
			Description: "Perfect for plumbers, electricians, and contractors",
			ImageURL:    "https://via.placeholder.com/300x200/C73E1D/FFFFFF?text=Plumbing+Template",
			Features:    []string{"Emergency Contact", "Services", "Testimonials", "Areas Served"},
		},
		{
			ID:          5,
			Name:        "Law Firm",
			Category:    models.CategoryProfessional,
			Description: "Designed for lawyers, accountants, and consultants",
			ImageURL:    "https://via.placeholder.com/300x200/3A86FF/FFFFFF?text=Law+Firm+Template",
			Features:    []string{"Practice Areas", "Attorney Profiles", "Case Studies", "Consultation"},
		},
		{
			ID:          6,
			Name:        "Landscaping",
			Category:    models.CategoryHomeServices,
			Description: "Ideal for landscapers and garden services",
			ImageURL:    "https://via.placeholder.com/300x200/27AE60/FFFFFF?text=Landscaping+Template",
			Features:    []string{"Portfolio", "Services", "Maintenance Plans", "Estimates"},
		},
	}
}
