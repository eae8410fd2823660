// Package ledger persists normalized line items and resolves events against
// the relational store.
//
// All writes are idempotent: line items and raw source transactions are keyed
// by their natural key (source, source_id), events by their migration-carried
// id. Re-running any sync against unchanged source data leaves the stored
// rows untouched.
package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// batchSize is the number of rows per INSERT statement in bulk upserts.
const batchSize = 100

// lineItemColumns are the mutable fields overwritten when the natural key
// already exists. The id and created_at of the existing row survive, and
// updated_at is deliberately not touched so that re-syncing unchanged data
// leaves rows byte-identical.
var lineItemColumns = []string{"date", "responsible_party", "payment_method", "description", "amount"}

// RawRecord is one raw source payload headed for the source_transactions
// table.
type RawRecord struct {
	SourceID string
	Payload  any
}

// UpsertLineItems writes items in bulk. Rows whose (source, source_id)
// already exist are updated in place, everything else is inserted with a
// fresh id. The batch is applied in a single transaction: either all items
// commit or none do.
func UpsertLineItems(db *gorm.DB, items []models.LineItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns(lineItemColumns),
		}).CreateInBatches(&items, batchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("upserting line items: %w", err)
	}

	return len(items), nil
}

// UpsertSourceTransactions writes the raw payloads for source in bulk with
// the same conflict semantics as UpsertLineItems.
func UpsertSourceTransactions(db *gorm.DB, source models.Source, records []RawRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	transactions := make([]models.SourceTransaction, 0, len(records))
	for _, record := range records {
		data, err := json.Marshal(record.Payload)
		if err != nil {
			return 0, fmt.Errorf("marshaling raw record %s: %w", record.SourceID, err)
		}

		transactions = append(transactions, models.SourceTransaction{
			Source:   source,
			SourceID: record.SourceID,
			Data:     string(data),
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data"}),
		}).CreateInBatches(&transactions, batchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("upserting source transactions: %w", err)
	}

	return len(transactions), nil
}
