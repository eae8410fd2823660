package ledger_test

import (
	"github.com/neerajsamtani/budget.rip-sub001/internal/ledger"
	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLineItem(sourceID string) models.LineItem {
	return models.LineItem{
		Date:             1704412800,
		ResponsibleParty: "Alex",
		PaymentMethod:    "Cash",
		Description:      "Groceries",
		Amount:           decimal.RequireFromString("42.50"),
		Source:           models.SourceCash,
		SourceID:         sourceID,
	}
}

// TestUpsertLineItemsIdempotent verifies the core correctness property of the
// upsert engine: re-running the same batch leaves row count and row contents
// unchanged.
func (suite *TestSuiteStandard) TestUpsertLineItemsIdempotent() {
	count, err := ledger.UpsertLineItems(suite.db, []models.LineItem{testLineItem("cash-7f3a")})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	var first models.LineItem
	require.Nil(suite.T(), suite.db.First(&first, "source_id = ?", "cash-7f3a").Error)

	_, err = ledger.UpsertLineItems(suite.db, []models.LineItem{testLineItem("cash-7f3a")})
	require.Nil(suite.T(), err)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.LineItem{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(1), rows, "Re-running the upsert duplicated the row")

	var second models.LineItem
	require.Nil(suite.T(), suite.db.First(&second, "source_id = ?", "cash-7f3a").Error)

	assert.Equal(suite.T(), first.ID, second.ID, "Id changed on re-upsert")
	assert.Equal(suite.T(), first.CreatedAt, second.CreatedAt)
	assert.Equal(suite.T(), first.Date, second.Date)
	assert.Equal(suite.T(), first.ResponsibleParty, second.ResponsibleParty)
	assert.Equal(suite.T(), first.PaymentMethod, second.PaymentMethod)
	assert.Equal(suite.T(), first.Description, second.Description)
	assert.True(suite.T(), first.Amount.Equal(second.Amount))
}

// TestUpsertLineItemsConverges verifies that two records with the same
// natural key but different fields converge to one row with the second
// write's contents.
func (suite *TestSuiteStandard) TestUpsertLineItemsConverges() {
	_, err := ledger.UpsertLineItems(suite.db, []models.LineItem{testLineItem("cash-7f3a")})
	require.Nil(suite.T(), err)

	var original models.LineItem
	require.Nil(suite.T(), suite.db.First(&original, "source_id = ?", "cash-7f3a").Error)

	changed := testLineItem("cash-7f3a")
	changed.Description = "Groceries and flowers"
	changed.Amount = decimal.RequireFromString("48.00")

	_, err = ledger.UpsertLineItems(suite.db, []models.LineItem{changed})
	require.Nil(suite.T(), err)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.LineItem{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(1), rows)

	var updated models.LineItem
	require.Nil(suite.T(), suite.db.First(&updated, "source_id = ?", "cash-7f3a").Error)
	assert.Equal(suite.T(), original.ID, updated.ID, "Id must be immutable across upserts")
	assert.Equal(suite.T(), "Groceries and flowers", updated.Description)
	assert.True(suite.T(), updated.Amount.Equal(decimal.RequireFromString("48.00")))
}

// TestUpsertLineItemsBatch verifies that a batch creates one row per natural
// key and that the same source id under different sources does not collide.
func (suite *TestSuiteStandard) TestUpsertLineItemsBatch() {
	venmoItem := testLineItem("shared-id")
	venmoItem.Source = models.SourceVenmo
	venmoItem.PaymentMethod = "Venmo"

	count, err := ledger.UpsertLineItems(suite.db, []models.LineItem{
		testLineItem("cash-1"),
		testLineItem("shared-id"),
		venmoItem,
	})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 3, count)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.LineItem{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(3), rows)
}

func (suite *TestSuiteStandard) TestUpsertLineItemsEmpty() {
	count, err := ledger.UpsertLineItems(suite.db, nil)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, count)
}

func (suite *TestSuiteStandard) TestUpsertSourceTransactions() {
	records := []ledger.RawRecord{
		{SourceID: "3489234892", Payload: map[string]any{"note": "Dinner", "amount": "21.00"}},
	}

	count, err := ledger.UpsertSourceTransactions(suite.db, models.SourceVenmo, records)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	// Same payload again: still one row
	_, err = ledger.UpsertSourceTransactions(suite.db, models.SourceVenmo, records)
	require.Nil(suite.T(), err)

	var rows int64
	require.Nil(suite.T(), suite.db.Model(&models.SourceTransaction{}).Count(&rows).Error)
	assert.Equal(suite.T(), int64(1), rows)

	var transaction models.SourceTransaction
	require.Nil(suite.T(), suite.db.First(&transaction, "source_id = ?", "3489234892").Error)
	assert.Equal(suite.T(), models.SourceVenmo, transaction.Source)
	assert.Contains(suite.T(), transaction.Data, "Dinner")
}
