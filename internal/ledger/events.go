package ledger

import (
	"errors"
	"fmt"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eventColumns are the mutable event fields overwritten when the
// migration-carried id already exists.
var eventColumns = []string{"date", "name", "category_id", "amount", "is_duplicate_transaction"}

// EventSubmission is the boundary shape for events: the category is a name,
// tags are names, line items are referenced by their migration-carried ids.
type EventSubmission struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Category               string   `json:"category"`
	Date                   int64    `json:"date"`
	Tags                   []string `json:"tags"`
	LineItems              []string `json:"line_items"`
	IsDuplicateTransaction bool     `json:"is_duplicate_transaction"`
}

// CategoryNotFoundError reports an event submission referencing a category
// that does not exist. Categories are never created implicitly since a typo
// here would corrupt reporting.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q does not exist", e.Name)
}

// UpsertEvent resolves and writes an event inside tx. The caller owns commit
// and rollback.
//
// The category must exist; line items referenced by the submission that have
// not yet landed in the relational store are skipped with a warning instead
// of failing the event, which tolerates out-of-order migration. Tags are
// created on demand. The event amount is stored denormalized as the sum of
// the line items that resolved.
func UpsertEvent(tx *gorm.DB, logger zerolog.Logger, submission EventSubmission) (string, error) {
	var category models.Category
	err := tx.Where("name = ?", submission.Category).First(&category).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &CategoryNotFoundError{Name: submission.Category}
		}
		return "", fmt.Errorf("resolving category %q: %w", submission.Category, err)
	}

	// Resolve line items before writing the event so the denormalized amount
	// can be computed in the same pass.
	lineItems := make([]models.LineItem, 0, len(submission.LineItems))
	amount := decimal.Zero
	for _, id := range submission.LineItems {
		var lineItem models.LineItem
		err := tx.First(&lineItem, "id = ?", id).Error
		if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().
				Str("event_id", submission.ID).
				Str("line_item_id", id).
				Msg("line item not yet migrated, skipping junction")
			continue
		}
		if err != nil {
			return "", fmt.Errorf("resolving line item %s: %w", id, err)
		}

		lineItems = append(lineItems, lineItem)
		amount = amount.Add(lineItem.Amount)
	}

	event := models.Event{
		ID:                     submission.ID,
		Date:                   submission.Date,
		Name:                   submission.Name,
		CategoryID:             category.ID,
		Amount:                 amount,
		IsDuplicateTransaction: submission.IsDuplicateTransaction,
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(eventColumns),
	}).Create(&event).Error
	if err != nil {
		return "", fmt.Errorf("writing event %s: %w", event.ID, err)
	}

	for _, lineItem := range lineItems {
		junction := models.EventLineItem{}
		err := tx.Where(models.EventLineItem{EventID: event.ID, LineItemID: lineItem.ID}).
			FirstOrCreate(&junction).Error
		if err != nil {
			return "", fmt.Errorf("linking line item %s to event %s: %w", lineItem.ID, event.ID, err)
		}
	}

	for _, name := range submission.Tags {
		tag := models.Tag{}
		err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
		if err != nil {
			return "", fmt.Errorf("resolving tag %q: %w", name, err)
		}

		junction := models.EventTag{}
		err = tx.Where(models.EventTag{EventID: event.ID, TagID: tag.ID}).
			FirstOrCreate(&junction).Error
		if err != nil {
			return "", fmt.Errorf("linking tag %q to event %s: %w", name, event.ID, err)
		}
	}

	return event.ID, nil
}

// SaveEvent runs UpsertEvent in its own transaction.
func SaveEvent(db *gorm.DB, logger zerolog.Logger, submission EventSubmission) (string, error) {
	var id string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = UpsertEvent(tx, logger, submission)
		return err
	})
	if err != nil {
		return "", err
	}

	return id, nil
}
