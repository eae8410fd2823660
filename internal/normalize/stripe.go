package normalize

import (
	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// StripeTransaction is one posted transaction from a bank account linked
// through the payment processor. Amounts are integer cents and negative for
// charges, timestamps are epoch seconds.
type StripeTransaction struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Description  string `json:"description"`
	TransactedAt int64  `json:"transacted_at"`
}

// Stripe maps a processor transaction onto the canonical line item.
//
// The amount is converted from cents to currency units and negated so that
// charges show up as positive expenses. The payment method is the linked
// account's display name since the processor can front several bank accounts;
// holder is the profile owner the account belongs to.
func Stripe(raw StripeTransaction, accountName string, holder string) models.LineItem {
	return models.LineItem{
		Date:             raw.TransactedAt,
		ResponsibleParty: holder,
		PaymentMethod:    accountName,
		Description:      raw.Description,
		Amount:           decimal.New(-raw.Amount, -2),
		Source:           models.SourceStripe,
		SourceID:         raw.ID,
	}
}
