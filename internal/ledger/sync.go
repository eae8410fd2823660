package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/neerajsamtani/budget.rip-sub001/internal/normalize"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Syncer runs the normalize → upsert pipeline for one source at a time.
//
// A sync is triggered externally (the refresh endpoint of the excluded HTTP
// layer) with the raw records already fetched; the Syncer owns everything
// from validation to the committed batch. Each batch is one transaction, so
// a failure rolls back all of its rows.
type Syncer struct {
	db      *gorm.DB
	logger  zerolog.Logger
	profile string // display name of the account owner across all sources
}

// NewSyncer returns a Syncer writing to db.
func NewSyncer(db *gorm.DB, logger zerolog.Logger, profile string) *Syncer {
	return &Syncer{
		db:      db,
		logger:  logger,
		profile: profile,
	}
}

// SyncStripe persists posted transactions of the processor-linked bank
// account with the given display name.
func (s *Syncer) SyncStripe(accountName string, transactions []normalize.StripeTransaction) (int, error) {
	logger := s.batchLogger(models.SourceStripe)

	items := make([]models.LineItem, 0, len(transactions))
	records := make([]RawRecord, 0, len(transactions))
	for _, raw := range transactions {
		items = append(items, normalize.Stripe(raw, accountName, s.profile))
		records = append(records, RawRecord{SourceID: raw.ID, Payload: raw})
	}

	return s.persist(logger, models.SourceStripe, accountName, items, records)
}

// SyncVenmo persists peer payments. Payments that fail normalization are
// skipped and logged, the rest of the batch still commits.
func (s *Syncer) SyncVenmo(payments []normalize.VenmoPayment) (int, error) {
	logger := s.batchLogger(models.SourceVenmo)

	items := make([]models.LineItem, 0, len(payments))
	records := make([]RawRecord, 0, len(payments))
	for _, raw := range payments {
		item, err := normalize.Venmo(raw, s.profile)
		if err != nil {
			logger.Warn().Err(err).Str("source_id", raw.ID).Msg("skipping payment")
			continue
		}

		items = append(items, item)
		records = append(records, RawRecord{SourceID: raw.ID, Payload: raw})
	}

	return s.persist(logger, models.SourceVenmo, "Venmo", items, records)
}

// SyncSplitwise persists shared expenses. Expenses that fail normalization
// are skipped and logged, the rest of the batch still commits.
func (s *Syncer) SyncSplitwise(expenses []normalize.SplitwiseExpense) (int, error) {
	logger := s.batchLogger(models.SourceSplitwise)

	items := make([]models.LineItem, 0, len(expenses))
	records := make([]RawRecord, 0, len(expenses))
	for _, raw := range expenses {
		item, err := normalize.Splitwise(raw, s.profile)
		if err != nil {
			logger.Warn().Err(err).Str("source_id", raw.ID).Msg("skipping expense")
			continue
		}

		items = append(items, item)
		records = append(records, RawRecord{SourceID: raw.ID, Payload: raw})
	}

	return s.persist(logger, models.SourceSplitwise, "Splitwise", items, records)
}

// SyncCash persists manually entered transactions. Manual entries come from
// our own form, so a malformed record means the form is broken: the sync
// fails fast on the first invalid record and nothing is written.
func (s *Syncer) SyncCash(entries []map[string]any) (int, error) {
	logger := s.batchLogger(models.SourceCash)

	items := make([]models.LineItem, 0, len(entries))
	records := make([]RawRecord, 0, len(entries))
	for _, raw := range entries {
		item, err := normalize.Cash(raw)
		if err != nil {
			return 0, fmt.Errorf("malformed cash transaction: %w", err)
		}

		items = append(items, item)
		records = append(records, RawRecord{SourceID: item.SourceID, Payload: raw})
	}

	return s.persist(logger, models.SourceCash, "Cash", items, records)
}

// persist writes the normalized batch, the raw payloads and the account
// refresh timestamp in one transaction.
func (s *Syncer) persist(logger zerolog.Logger, source models.Source, accountName string, items []models.LineItem, records []RawRecord) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		count, err = UpsertLineItems(tx, items)
		if err != nil {
			return err
		}

		_, err = UpsertSourceTransactions(tx, source, records)
		if err != nil {
			return err
		}

		return touchAccount(tx, source, accountName)
	})
	if err != nil {
		return 0, err
	}

	logger.Info().Int("count", count).Msg("sync complete")
	return count, nil
}

// touchAccount creates the integration account row for source if it does not
// exist yet and records the sync time.
func touchAccount(tx *gorm.DB, source models.Source, displayName string) error {
	var account models.IntegrationAccount
	err := tx.Where(models.IntegrationAccount{Source: source}).
		Attrs(models.IntegrationAccount{DisplayName: displayName}).
		FirstOrCreate(&account).Error
	if err != nil {
		return fmt.Errorf("resolving integration account for %s: %w", source, err)
	}

	now := time.Now().In(time.UTC)
	err = tx.Model(&account).Update("last_refreshed_at", now).Error
	if err != nil {
		return fmt.Errorf("updating refresh time for %s: %w", source, err)
	}

	return nil
}

func (s *Syncer) batchLogger(source models.Source) zerolog.Logger {
	return s.logger.With().
		Str("batch_id", uuid.NewString()).
		Str("source", string(source)).
		Logger()
}
