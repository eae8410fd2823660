package normalize

import (
	"fmt"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// Venmo payment actions.
const (
	VenmoActionPay    = "pay"
	VenmoActionCharge = "charge"
)

// VenmoPayment is one payment from the peer-payment service. Actor and
// Target are display names, the amount is a decimal string, date_created has
// no timezone and is documented as UTC.
type VenmoPayment struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Actor       string `json:"actor"`
	Target      string `json:"target"`
	Amount      string `json:"amount"`
	Note        string `json:"note"`
	DateCreated string `json:"date_created"`
}

// Venmo maps a peer payment onto the canonical line item.
//
// profile is the display name of the account owner. The responsible party is
// the counterparty, and the amount is signed from the owner's point of view:
// positive when money left the account, negative when money came in.
func Venmo(raw VenmoPayment, profile string) (models.LineItem, error) {
	date, err := parseDate(raw.DateCreated, layoutVenmo)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("could not parse date of payment %s: %w", raw.ID, err)
	}

	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("could not parse amount of payment %s: %w", raw.ID, err)
	}

	if raw.Action != VenmoActionPay && raw.Action != VenmoActionCharge {
		return models.LineItem{}, fmt.Errorf("unknown action %q for payment %s", raw.Action, raw.ID)
	}

	counterparty := raw.Actor
	if raw.Actor == profile {
		counterparty = raw.Target
	}

	// Money leaves the account when the owner pays or is charged by the
	// counterparty.
	outflow := (raw.Actor == profile && raw.Action == VenmoActionPay) ||
		(raw.Actor != profile && raw.Action == VenmoActionCharge)
	if !outflow {
		amount = amount.Neg()
	}

	return models.LineItem{
		Date:             date,
		ResponsibleParty: counterparty,
		PaymentMethod:    "Venmo",
		Description:      raw.Note,
		Amount:           amount,
		Source:           models.SourceVenmo,
		SourceID:         raw.ID,
	}, nil
}
