package normalize

import (
	"fmt"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/neerajsamtani/budget.rip-sub001/internal/validate"
)

// cashContext labels validation errors for manually entered transactions.
const cashContext = "cash transaction"

// Cash maps a manually entered transaction onto the canonical line item.
//
// Manual entries arrive as untyped records from the entry form, so every
// field is validated before it is used. The id is assigned by the form when
// the entry is created and serves as the source-native id.
func Cash(record map[string]any) (models.LineItem, error) {
	id, err := validate.RequireField(record, "id", cashContext)
	if err != nil {
		return models.LineItem{}, err
	}

	rawDate, err := validate.RequireField(record, "date", cashContext)
	if err != nil {
		return models.LineItem{}, err
	}

	person, err := validate.RequireField(record, "person", cashContext)
	if err != nil {
		return models.LineItem{}, err
	}

	description, err := validate.RequireField(record, "description", cashContext)
	if err != nil {
		return models.LineItem{}, err
	}

	rawAmount, err := validate.RequireField(record, "amount", cashContext)
	if err != nil {
		return models.LineItem{}, err
	}

	amount, err := validate.NonNegativeAmount(rawAmount, "amount")
	if err != nil {
		return models.LineItem{}, err
	}

	dateString, ok := rawDate.(string)
	if !ok {
		return models.LineItem{}, fmt.Errorf("date of cash transaction must be a string, got %T", rawDate)
	}

	date, err := parseDate(dateString, layoutCash)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("could not parse date of cash transaction: %w", err)
	}

	return models.LineItem{
		Date:             date,
		ResponsibleParty: fmt.Sprint(person),
		PaymentMethod:    "Cash",
		Description:      fmt.Sprint(description),
		Amount:           amount,
		Source:           models.SourceCash,
		SourceID:         fmt.Sprint(id),
	}, nil
}
