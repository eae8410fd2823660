package models

import (
	"strings"

	"github.com/neerajsamtani/budget.rip-sub001/internal/ids"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event is a named grouping of line items for reporting, for example a trip
// or a shared bill. The amount is derivable from the constituent line items
// but stored denormalized for cheap reads.
type Event struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Date                   int64           `json:"date"` // POSIX seconds
	Name                   string          `json:"name"`
	CategoryID             string          `json:"category_id"`
	Category               Category        `json:"-"`
	Amount                 decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	IsDuplicateTransaction bool            `json:"is_duplicate_transaction"`
}

func (Event) Self() string {
	return "Event"
}

func (e *Event) BeforeCreate(_ *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = ids.New(ids.PrefixEvent)
	}
	return nil
}

func (e *Event) BeforeSave(_ *gorm.DB) (err error) {
	e.Name = strings.TrimSpace(e.Name)
	return nil
}

// EventLineItem links one event to one line item.
type EventLineItem struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	EventID    string   `json:"event_id" gorm:"uniqueIndex:event_line_item_pair"`
	Event      Event    `json:"-"`
	LineItemID string   `json:"line_item_id" gorm:"uniqueIndex:event_line_item_pair"`
	LineItem   LineItem `json:"-"`
}

func (EventLineItem) Self() string {
	return "Event Line Item"
}

func (e *EventLineItem) BeforeCreate(_ *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = ids.New(ids.PrefixEventLineItem)
	}
	return nil
}

// EventTag links one event to one tag.
type EventTag struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	EventID string `json:"event_id" gorm:"uniqueIndex:event_tag_pair"`
	Event   Event  `json:"-"`
	TagID   string `json:"tag_id" gorm:"uniqueIndex:event_tag_pair"`
	Tag     Tag    `json:"-"`
}

func (EventTag) Self() string {
	return "Event Tag"
}

func (e *EventTag) BeforeCreate(_ *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = ids.New(ids.PrefixEventTag)
	}
	return nil
}
