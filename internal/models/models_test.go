package models_test

import (
	"strings"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestIDPrefixes() {
	lineItem := models.LineItem{Source: models.SourceCash, SourceID: "cash-1", Amount: decimal.New(1, 0)}
	require.Nil(suite.T(), suite.db.Create(&lineItem).Error)
	assert.True(suite.T(), strings.HasPrefix(lineItem.ID, "li_"), "Line item id is %s", lineItem.ID)

	category := models.Category{Name: "Travel"}
	require.Nil(suite.T(), suite.db.Create(&category).Error)
	assert.True(suite.T(), strings.HasPrefix(category.ID, "cat_"), "Category id is %s", category.ID)

	event := models.Event{Name: "Cabin weekend", CategoryID: category.ID}
	require.Nil(suite.T(), suite.db.Create(&event).Error)
	assert.True(suite.T(), strings.HasPrefix(event.ID, "evt_"), "Event id is %s", event.ID)
}

func (suite *TestSuiteStandard) TestMigratedIDKept() {
	lineItem := models.LineItem{ID: "li_migrated01", Source: models.SourceCash, SourceID: "cash-1"}
	require.Nil(suite.T(), suite.db.Create(&lineItem).Error)
	assert.Equal(suite.T(), "li_migrated01", lineItem.ID)
}

func (suite *TestSuiteStandard) TestLineItemTrimWhitespace() {
	lineItem := models.LineItem{
		ResponsibleParty: " Alex ",
		Description:      "\tGroceries  ",
		Source:           models.SourceCash,
		SourceID:         "cash-1",
	}
	require.Nil(suite.T(), suite.db.Create(&lineItem).Error)

	assert.Equal(suite.T(), "Alex", lineItem.ResponsibleParty)
	assert.Equal(suite.T(), "Groceries", lineItem.Description)
}

func (suite *TestSuiteStandard) TestCategoryNameUnique() {
	require.Nil(suite.T(), suite.db.Create(&models.Category{Name: "Travel"}).Error)

	err := suite.db.Create(&models.Category{Name: "Travel"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestTagNameUnique() {
	require.Nil(suite.T(), suite.db.Create(&models.Tag{Name: "trip-2024"}).Error)

	err := suite.db.Create(&models.Tag{Name: "trip-2024"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrTagNameNotUnique)
}

func (suite *TestSuiteStandard) TestLineItemNaturalKeyUnique() {
	require.Nil(suite.T(), suite.db.Create(&models.LineItem{Source: models.SourceCash, SourceID: "cash-1"}).Error)

	err := suite.db.Create(&models.LineItem{Source: models.SourceCash, SourceID: "cash-1"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrLineItemNotUnique)

	// The same source id under a different source is a different transaction
	err = suite.db.Create(&models.LineItem{Source: models.SourceVenmo, SourceID: "cash-1"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestIntegrationAccountSourceUnique() {
	require.Nil(suite.T(), suite.db.Create(&models.IntegrationAccount{Source: models.SourceVenmo, DisplayName: "Venmo"}).Error)

	err := suite.db.Create(&models.IntegrationAccount{Source: models.SourceVenmo, DisplayName: "Venmo again"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountSourceNotUnique)
}

func (suite *TestSuiteStandard) TestResourceNotFound() {
	var category models.Category
	err := suite.db.First(&category, "name = ?", "absent").Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "category")

	var account models.IntegrationAccount
	err = suite.db.First(&account, "source = ?", "stripe").Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "integration account")
}

func (suite *TestSuiteStandard) TestSelf() {
	tests := []struct {
		resource models.Resource
		want     string
	}{
		{models.LineItem{}, "Line Item"},
		{models.SourceTransaction{}, "Source Transaction"},
		{models.Category{}, "Category"},
		{models.Tag{}, "Tag"},
		{models.Event{}, "Event"},
		{models.EventLineItem{}, "Event Line Item"},
		{models.EventTag{}, "Event Tag"},
		{models.IntegrationAccount{}, "Integration Account"},
		{models.User{}, "User"},
	}

	for _, tt := range tests {
		assert.Equal(suite.T(), tt.want, tt.resource.Self())
	}
}
