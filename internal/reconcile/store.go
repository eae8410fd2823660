// Package reconcile compares the legacy document store and the relational
// store during the migration and reports per-stage agreement.
//
// The driver only sees the Store interface, never a store's native query
// language. Removing the legacy store later means deleting one
// implementation, not touching the driver.
package reconcile

import (
	"context"

	"github.com/shopspring/decimal"
)

// LineItem is the store-independent projection of one line item used for
// comparison.
type LineItem struct {
	ID               string
	Date             int64
	ResponsibleParty string
	PaymentMethod    string
	Description      string
	Amount           decimal.Decimal
	Source           string
	SourceID         string
}

// Event is the store-independent projection of one event with its
// relationships.
type Event struct {
	ID          string
	Name        string
	Category    string
	LineItemIDs []string
	TagNames    []string
}

// Store is the read surface the verification driver needs from either store.
type Store interface {
	// Name labels the store in reports and log lines.
	Name() string

	CategoryNames(ctx context.Context) ([]string, error)
	TagNames(ctx context.Context) ([]string, error)

	LineItemCount(ctx context.Context) (int64, error)
	// LineItems returns line items ordered by id. A limit of 0 or less
	// returns all of them.
	LineItems(ctx context.Context, limit int) ([]LineItem, error)
	// LineItemsByID returns the line items for the given ids, keyed by id.
	// Missing ids are simply absent from the result.
	LineItemsByID(ctx context.Context, ids []string) (map[string]LineItem, error)

	Events(ctx context.Context) ([]Event, error)

	AccountSources(ctx context.Context) ([]string, error)
	UserNames(ctx context.Context) ([]string, error)
}
