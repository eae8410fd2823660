package ledger_test

import (
	"github.com/neerajsamtani/budget.rip-sub001/internal/ledger"
	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/neerajsamtani/budget.rip-sub001/internal/normalize"
	"github.com/neerajsamtani/budget.rip-sub001/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cashEntry(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"date":        "2024-01-05",
		"person":      "Alex",
		"description": "Groceries",
		"amount":      "42.50",
	}
}

// TestSyncCash covers the concrete scenario of a manually entered groceries
// transaction: persisted once, and a second identical sync leaves exactly
// one row.
func (suite *TestSuiteStandard) TestSyncCash() {
	syncer := ledger.NewSyncer(suite.db, suite.logger, "Alex")

	count, err := syncer.SyncCash([]map[string]any{cashEntry("cash-7f3a")})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	_, err = syncer.SyncCash([]map[string]any{cashEntry("cash-7f3a")})
	require.Nil(suite.T(), err)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.LineItem{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(1), rows)

	var item models.LineItem
	require.Nil(suite.T(), suite.db.First(&item, "source_id = ?", "cash-7f3a").Error)
	assert.Equal(suite.T(), "Cash", item.PaymentMethod)
	assert.Equal(suite.T(), "Alex", item.ResponsibleParty)

	// The sync also records the account refresh
	var account models.IntegrationAccount
	require.Nil(suite.T(), suite.db.First(&account, "source = ?", models.SourceCash).Error)
	assert.NotNil(suite.T(), account.LastRefreshedAt)
}

// TestSyncCashFailFast verifies that one malformed manual entry aborts the
// whole sync without writing anything.
func (suite *TestSuiteStandard) TestSyncCashFailFast() {
	syncer := ledger.NewSyncer(suite.db, suite.logger, "Alex")

	malformed := cashEntry("cash-2")
	delete(malformed, "person")

	_, err := syncer.SyncCash([]map[string]any{cashEntry("cash-1"), malformed})

	var missing *validate.MissingFieldError
	require.ErrorAs(suite.T(), err, &missing)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.LineItem{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(0), rows, "Fail-fast sync must not write any rows")
}

// TestSyncVenmoSkipsMalformed verifies that API-sourced syncs skip malformed
// records instead of failing the batch.
func (suite *TestSuiteStandard) TestSyncVenmoSkipsMalformed() {
	syncer := ledger.NewSyncer(suite.db, suite.logger, "Alex")

	count, err := syncer.SyncVenmo([]normalize.VenmoPayment{
		{
			ID:          "3489234892",
			Action:      "pay",
			Actor:       "Alex",
			Target:      "Sam",
			Amount:      "21.00",
			Note:        "Dinner",
			DateCreated: "2024-01-05T19:23:41",
		},
		{
			ID:          "3489234893",
			Action:      "pay",
			Actor:       "Alex",
			Target:      "Sam",
			Amount:      "broken",
			DateCreated: "2024-01-05T19:23:41",
		},
	})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.LineItem{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(1), rows)
}

func (suite *TestSuiteStandard) TestSyncStripe() {
	syncer := ledger.NewSyncer(suite.db, suite.logger, "Alex")

	count, err := syncer.SyncStripe("Chase Checking", []normalize.StripeTransaction{
		{ID: "fctxn_1", Amount: -4250, Description: "TRADER JOE'S #123", TransactedAt: 1704412800},
	})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	var item models.LineItem
	require.Nil(suite.T(), suite.db.First(&item, "source = ?", models.SourceStripe).Error)
	assert.Equal(suite.T(), "Chase Checking", item.PaymentMethod)

	var transactions int64
	require.Nil(suite.T(), suite.db.Model(&models.SourceTransaction{}).Count(&transactions).Error)
	assert.Equal(suite.T(), int64(1), transactions, "Raw payload was not persisted")
}

func (suite *TestSuiteStandard) TestSyncSplitwise() {
	syncer := ledger.NewSyncer(suite.db, suite.logger, "Alex")

	count, err := syncer.SyncSplitwise([]normalize.SplitwiseExpense{
		{
			ID:          "2837465",
			Description: "Cabin weekend",
			Date:        "2024-01-05T00:00:00Z",
			Users: []normalize.SplitwiseShare{
				{Name: "Alex", OwedShare: "66.67"},
				{Name: "Sam", OwedShare: "33.33"},
			},
		},
	})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	var account models.IntegrationAccount
	require.Nil(suite.T(), suite.db.First(&account, "source = ?", models.SourceSplitwise).Error)
	assert.Equal(suite.T(), "Splitwise", account.DisplayName)
}
