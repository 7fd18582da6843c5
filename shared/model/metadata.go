package model

import "time"

// Metadata carries the audit columns shared by all mutable tables. The
// timestamps are filled by database defaults; only the actor columns travel
// with inserts.
type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}
