// Package models defines the core data structures shared by the
// LocalSites Pro server and client: users, site templates and contact
// messages.
package models

import (
	"strings"
	"time"
)

// Plan identifies the subscription a user is on.
type Plan string

const (
	// PlanTrial is assigned to freshly signed-up users.
	PlanTrial Plan = "trial"
	// PlanStarter is assigned on login.
	PlanStarter Plan = "starter"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	return p == PlanTrial || p == PlanStarter
}

// User is the account record returned by the mock auth endpoints.
type User struct {
	// Name is the display name.
	Name string `json:"name"`
	// Email is the login address.
	Email string `json:"email"`
	// Plan is the subscription plan.
	Plan Plan `json:"plan"`
	// BusinessType is set only for users created through signup.
	BusinessType string `json:"businessType,omitempty"`
}

// NameFromEmail returns the local part of an email address, the
// substring before the first "@". Without an "@" the whole address is
// returned.
func NameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// Category groups templates by the kind of business they target.
type Category string

const (
	// CategoryAll is the filter pseudo-category matching every template.
	CategoryAll Category = "all"

	CategoryRestaurant   Category = "restaurant"
	CategoryMedical      Category = "medical"
	CategoryAutomotive   Category = "automotive"
	CategoryHomeServices Category = "home-services"
	CategoryProfessional Category = "professional"
)

// Categories lists the concrete template categories in display order.
var Categories = []Category{
	CategoryRestaurant,
	CategoryMedical,
	CategoryAutomotive,
	CategoryHomeServices,
	CategoryProfessional,
}

// Matches reports whether a template of category t is selected by the
// filter category c.
func (c Category) Matches(t Category) bool {
	return c == CategoryAll || c == t
}

// Template describes one selectable site template.
type Template struct {
	// ID is unique within the catalog.
	ID int `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Category is the business category.
	Category Category `json:"category"`
	// Description is a one-line pitch.
	Description string `json:"description"`
	// ImageURL points at the preview image.
	ImageURL string `json:"image"`
	// Features is the ordered list of highlighted features.
	Features []string `json:"features"`
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
