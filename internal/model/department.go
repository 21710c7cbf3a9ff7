package model

import "time"

// Department is an organizational unit owning documents. Departments are
// read-only from this service's perspective: they are seeded by migration
// and referenced by documents, never created or edited through the API.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
