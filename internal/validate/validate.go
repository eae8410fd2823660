// Package validate checks untyped records before they are trusted by the
// normalizers and the persistence layer. Failures are typed per field so
// callers can decide between skipping the record and aborting the batch.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// maxAmountDigits is the number of digits before the decimal point that fit
// into the DECIMAL(20,8) columns of the relational store.
const maxAmountDigits = 12

var amountBound = decimal.New(1, maxAmountDigits)

// MissingFieldError reports a required field that is absent or empty.
type MissingFieldError struct {
	Field   string
	Context string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s", e.Field, e.Context)
}

// InvalidAmountError reports a value that cannot be used as a monetary amount.
type InvalidAmountError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount in field %q: %v (%s)", e.Field, e.Value, e.Reason)
}

// RequireField returns the value of field in record. Absent and falsy values
// (nil, empty string, false, numeric zero treated as unset by the manual entry
// form) fail with a MissingFieldError carrying the context label.
func RequireField(record map[string]any, field string, context string) (any, error) {
	value, ok := record[field]
	if !ok || isFalsy(value) {
		return nil, &MissingFieldError{Field: field, Context: context}
	}

	return value, nil
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		return err == nil && parsed.IsZero()
	}

	return false
}

// Amount converts value into a decimal. Integers, floats, numeric strings and
// json.Number are accepted; everything else fails with an InvalidAmountError,
// as do values that overflow the DECIMAL(20,8) storage precision.
func Amount(value any, field string) (decimal.Decimal, error) {
	var amount decimal.Decimal

	switch v := value.(type) {
	case int:
		amount = decimal.NewFromInt(int64(v))
	case int64:
		amount = decimal.NewFromInt(v)
	case float64:
		amount = decimal.NewFromFloat(v)
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, &InvalidAmountError{Field: field, Value: value, Reason: "not numeric"}
		}
		amount = parsed
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, &InvalidAmountError{Field: field, Value: value, Reason: "not numeric"}
		}
		amount = parsed
	case decimal.Decimal:
		amount = v
	default:
		return decimal.Zero, &InvalidAmountError{Field: field, Value: value, Reason: "unsupported type"}
	}

	if amount.Abs().GreaterThanOrEqual(amountBound) {
		return decimal.Zero, &InvalidAmountError{Field: field, Value: value, Reason: "exceeds storage precision"}
	}

	return amount, nil
}

// NonNegativeAmount is Amount with an additional check that the value is not
// negative. Manually entered cash transactions use this since the entry form
// has no concept of refunds.
func NonNegativeAmount(value any, field string) (decimal.Decimal, error) {
	amount, err := Amount(value, field)
	if err != nil {
		return decimal.Zero, err
	}

	if amount.IsNegative() {
		return decimal.Zero, &InvalidAmountError{Field: field, Value: value, Reason: "must not be negative"}
	}

	return amount, nil
}
