package model

import "math"

// Pagination defaults shared by the API server and the client-side store.
const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100
)

// Contact represents one entry of the contacts collection.
// ID is assigned by the server on create and never changed afterwards.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
	Action      string `json:"action"`
}

// ContactInput is the payload accepted when creating a contact.
type ContactInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Photo       string `json:"photo,omitempty"`
	Action      string `json:"action,omitempty"`
}

// ContactListOptions carries search and pagination parameters for listing contacts.
type ContactListOptions struct {
	// Query is matched case-insensitively against name, description and action.
	// Empty string returns every contact.
	Query string
	Page  int // 1-based
	Limit int
}

// Offset returns the number of rows to skip for the requested page.
// Pages too far out to address saturate at math.MaxInt.
func (o ContactListOptions) Offset() int {
	if o.Page < 1 || o.Limit < 1 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// ContactPage is a single page of contacts together with the total number of
// contacts matching the query across all pages.
type ContactPage struct {
	Contacts []*Contact
	Total    int
}
