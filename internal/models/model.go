package models

import (
	"time"

	"gorm.io/gorm"
)

// Source identifies the system a line item originated from.
type Source string

const (
	SourceStripe    Source = "stripe"
	SourceVenmo     Source = "venmo"
	SourceSplitwise Source = "splitwise"
	SourceCash      Source = "cash"
)

// Sources lists all known sources.
var Sources = []Source{SourceStripe, SourceVenmo, SourceSplitwise, SourceCash}

// Resource is implemented by every model. Self names the resource the way it
// is presented to users, e.g. in "there is no category matching your query".
type Resource interface {
	Self() string
}

// Timestamps contains the timestamps that gorm sets automatically.
type Timestamps struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *Timestamps) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	if m.DeletedAt != nil {
		m.DeletedAt.Time = m.DeletedAt.Time.In(time.UTC)
	}

	return nil
}
