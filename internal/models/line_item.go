package models

import (
	"strings"

	"github.com/neerajsamtani/budget.rip-sub001/internal/ids"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem is one normalized, atomic financial transaction from any source.
//
// The (Source, SourceID) pair is the natural key: it identifies the
// transaction within its source system regardless of the internal id, and the
// unique index on it is what makes repeated syncs idempotent.
type LineItem struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Date             int64           `json:"date"` // POSIX seconds
	ResponsibleParty string          `json:"responsible_party"`
	PaymentMethod    string          `json:"payment_method"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Source           Source          `json:"source" gorm:"uniqueIndex:line_item_natural_key"`
	SourceID         string          `json:"source_id" gorm:"uniqueIndex:line_item_natural_key"`
}

func (LineItem) Self() string {
	return "Line Item"
}

// BeforeCreate generates the id. Ids carried over from the legacy store are
// kept as-is.
func (l *LineItem) BeforeCreate(_ *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = ids.New(ids.PrefixLineItem)
	}
	return nil
}

// BeforeSave trims whitespace from string fields.
func (l *LineItem) BeforeSave(_ *gorm.DB) (err error) {
	l.ResponsibleParty = strings.TrimSpace(l.ResponsibleParty)
	l.Description = strings.TrimSpace(l.Description)
	return nil
}

// SourceTransaction is the raw payload of one source transaction, persisted
// next to the line item it was normalized into. It shares the natural key
// with line items so re-syncs overwrite instead of duplicating.
type SourceTransaction struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Source   Source `json:"source" gorm:"uniqueIndex:source_transaction_natural_key"`
	SourceID string `json:"source_id" gorm:"uniqueIndex:source_transaction_natural_key"`
	Data     string `json:"data"` // raw record as JSON
}

func (SourceTransaction) Self() string {
	return "Source Transaction"
}

func (t *SourceTransaction) BeforeCreate(_ *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = ids.New(ids.PrefixSourceTransaction)
	}
	return nil
}
