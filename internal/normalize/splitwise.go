package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// SplitwiseExpense is one expense from the splitting service, with the share
// each involved user owes. Dates are RFC 3339.
type SplitwiseExpense struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	Users       []SplitwiseShare `json:"users"`
}

// SplitwiseShare is one user's part of an expense. OwedShare is a decimal
// string as delivered by the service.
type SplitwiseShare struct {
	Name      string `json:"name"`
	OwedShare string `json:"owed_share"`
}

// Splitwise maps a shared expense onto the canonical line item.
//
// The amount is the owed share of the profile owner, the responsible party
// lists everyone else involved in the expense.
func Splitwise(raw SplitwiseExpense, profile string) (models.LineItem, error) {
	date, err := parseDate(raw.Date, time.RFC3339)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("could not parse date of expense %s: %w", raw.ID, err)
	}

	var amount decimal.Decimal
	var found bool
	others := make([]string, 0, len(raw.Users))

	for _, share := range raw.Users {
		if share.Name == profile {
			amount, err = decimal.NewFromString(share.OwedShare)
			if err != nil {
				return models.LineItem{}, fmt.Errorf("could not parse owed share of expense %s: %w", raw.ID, err)
			}
			found = true
			continue
		}

		others = append(others, share.Name)
	}

	if !found {
		return models.LineItem{}, fmt.Errorf("expense %s has no share for %s", raw.ID, profile)
	}

	return models.LineItem{
		Date:             date,
		ResponsibleParty: strings.Join(others, ", "),
		PaymentMethod:    "Splitwise",
		Description:      raw.Description,
		Amount:           amount,
		Source:           models.SourceSplitwise,
		SourceID:         raw.ID,
	}, nil
}
