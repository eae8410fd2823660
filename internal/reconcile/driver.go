package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Mode selects how deep the line item stage digs.
type Mode string

const (
	// ModeQuick spot-checks a sample of line items.
	ModeQuick Mode = "quick"
	// ModeThorough compares every line item field by field.
	ModeThorough Mode = "thorough"
)

// defaultSampleSize is the number of line items compared in quick mode.
const defaultSampleSize = 25

// Stage names, in execution order.
const (
	StageReferenceData = "reference data"
	StageLineItems     = "transactions & line items"
	StageEvents        = "events & relationships"
	StageAccounts      = "accounts & users"
)

// StageResult is the outcome of one verification stage. Details lists every
// disagreement the stage found.
type StageResult struct {
	Stage   string   `json:"stage"`
	Passed  bool     `json:"passed"`
	Details []string `json:"details,omitempty"`
}

// Report is the ordered list of stage results.
type Report struct {
	Stages []StageResult `json:"stages"`
}

// Passed reports whether every stage passed.
func (r Report) Passed() bool {
	for _, stage := range r.Stages {
		if !stage.Passed {
			return false
		}
	}

	return true
}

// Driver runs the staged comparison between the two stores. It never writes
// to either store.
type Driver struct {
	legacy     Store
	relational Store
	logger     zerolog.Logger

	// SampleSize is the number of line items compared in quick mode.
	SampleSize int
}

// NewDriver returns a Driver comparing legacy against relational.
func NewDriver(legacy, relational Store, logger zerolog.Logger) *Driver {
	return &Driver{
		legacy:     legacy,
		relational: relational,
		logger:     logger,
		SampleSize: defaultSampleSize,
	}
}

// VerifyAll runs all stages in order. A failed stage never stops the
// following stages, the report is always complete.
func (d *Driver) VerifyAll(ctx context.Context, mode Mode) Report {
	stages := []struct {
		name string
		run  func(context.Context, Mode) []string
	}{
		{StageReferenceData, d.verifyReferenceData},
		{StageLineItems, d.verifyLineItems},
		{StageEvents, d.verifyEvents},
		{StageAccounts, d.verifyAccounts},
	}

	var report Report
	for _, stage := range stages {
		details := stage.run(ctx, mode)
		result := StageResult{
			Stage:   stage.name,
			Passed:  len(details) == 0,
			Details: details,
		}

		if result.Passed {
			d.logger.Info().Str("stage", stage.name).Msg("verification stage passed")
		} else {
			d.logger.Warn().Str("stage", stage.name).Strs("details", details).Msg("verification stage failed")
		}

		report.Stages = append(report.Stages, result)
	}

	return report
}

func (d *Driver) verifyReferenceData(ctx context.Context, _ Mode) (details []string) {
	details = append(details, d.compareNames(ctx, "category", Store.CategoryNames)...)
	details = append(details, d.compareNames(ctx, "tag", Store.TagNames)...)
	return details
}

func (d *Driver) verifyLineItems(ctx context.Context, mode Mode) (details []string) {
	legacyCount, err := d.legacy.LineItemCount(ctx)
	if err != nil {
		return append(details, readError(d.legacy, err))
	}

	relationalCount, err := d.relational.LineItemCount(ctx)
	if err != nil {
		return append(details, readError(d.relational, err))
	}

	if legacyCount != relationalCount {
		details = append(details, fmt.Sprintf("line item count differs: %d in %s store, %d in %s store", legacyCount, d.legacy.Name(), relationalCount, d.relational.Name()))
	}

	limit := d.SampleSize
	if mode == ModeThorough {
		limit = 0
	}

	sample, err := d.legacy.LineItems(ctx, limit)
	if err != nil {
		return append(details, readError(d.legacy, err))
	}

	ids := make([]string, 0, len(sample))
	for _, item := range sample {
		ids = append(ids, item.ID)
	}

	counterparts, err := d.relational.LineItemsByID(ctx, ids)
	if err != nil {
		return append(details, readError(d.relational, err))
	}

	for _, item := range sample {
		counterpart, ok := counterparts[item.ID]
		if !ok {
			details = append(details, fmt.Sprintf("line item %s is missing from the %s store", item.ID, d.relational.Name()))
			continue
		}

		details = append(details, diffLineItem(item, counterpart)...)
	}

	return details
}

func (d *Driver) verifyEvents(ctx context.Context, _ Mode) (details []string) {
	legacyEvents, err := d.legacy.Events(ctx)
	if err != nil {
		return append(details, readError(d.legacy, err))
	}

	relationalEvents, err := d.relational.Events(ctx)
	if err != nil {
		return append(details, readError(d.relational, err))
	}

	counterparts := make(map[string]Event, len(relationalEvents))
	for _, event := range relationalEvents {
		counterparts[event.ID] = event
	}

	for _, event := range legacyEvents {
		counterpart, ok := counterparts[event.ID]
		if !ok {
			details = append(details, fmt.Sprintf("event %s is missing from the %s store", event.ID, d.relational.Name()))
			continue
		}

		if event.Name != counterpart.Name {
			details = append(details, fmt.Sprintf("event %s: name is %q, want %q", event.ID, counterpart.Name, event.Name))
		}

		if event.Category != counterpart.Category {
			details = append(details, fmt.Sprintf("event %s: category is %q, want %q", event.ID, counterpart.Category, event.Category))
		}

		if len(event.LineItemIDs) != len(counterpart.LineItemIDs) {
			details = append(details, fmt.Sprintf("event %s: %d line item junctions, want %d", event.ID, len(counterpart.LineItemIDs), len(event.LineItemIDs)))
		}

		if len(event.TagNames) != len(counterpart.TagNames) {
			details = append(details, fmt.Sprintf("event %s: %d tag junctions, want %d", event.ID, len(counterpart.TagNames), len(event.TagNames)))
		}
	}

	if len(relationalEvents) > len(legacyEvents) {
		details = append(details, fmt.Sprintf("%s store has %d events, %s store only %d", d.relational.Name(), len(relationalEvents), d.legacy.Name(), len(legacyEvents)))
	}

	return details
}

func (d *Driver) verifyAccounts(ctx context.Context, _ Mode) (details []string) {
	details = append(details, d.compareNames(ctx, "account source", Store.AccountSources)...)
	details = append(details, d.compareNames(ctx, "user", Store.UserNames)...)
	return details
}

// compareNames reads one name list from both stores and reports set
// differences.
func (d *Driver) compareNames(ctx context.Context, label string, read func(Store, context.Context) ([]string, error)) (details []string) {
	legacyNames, err := read(d.legacy, ctx)
	if err != nil {
		return append(details, readError(d.legacy, err))
	}

	relationalNames, err := read(d.relational, ctx)
	if err != nil {
		return append(details, readError(d.relational, err))
	}

	inRelational := make(map[string]bool, len(relationalNames))
	for _, name := range relationalNames {
		inRelational[name] = true
	}

	inLegacy := make(map[string]bool, len(legacyNames))
	for _, name := range legacyNames {
		inLegacy[name] = true

		if !inRelational[name] {
			details = append(details, fmt.Sprintf("%s %q is missing from the %s store", label, name, d.relational.Name()))
		}
	}

	for _, name := range relationalNames {
		if !inLegacy[name] {
			details = append(details, fmt.Sprintf("%s %q only exists in the %s store", label, name, d.relational.Name()))
		}
	}

	return details
}

func diffLineItem(want, got LineItem) (details []string) {
	if want.Date != got.Date {
		details = append(details, fmt.Sprintf("line item %s: date is %d, want %d", want.ID, got.Date, want.Date))
	}
	if want.ResponsibleParty != got.ResponsibleParty {
		details = append(details, fmt.Sprintf("line item %s: responsible party is %q, want %q", want.ID, got.ResponsibleParty, want.ResponsibleParty))
	}
	if want.PaymentMethod != got.PaymentMethod {
		details = append(details, fmt.Sprintf("line item %s: payment method is %q, want %q", want.ID, got.PaymentMethod, want.PaymentMethod))
	}
	if want.Description != got.Description {
		details = append(details, fmt.Sprintf("line item %s: description is %q, want %q", want.ID, got.Description, want.Description))
	}
	if !want.Amount.Equal(got.Amount) {
		details = append(details, fmt.Sprintf("line item %s: amount is %s, want %s", want.ID, got.Amount, want.Amount))
	}
	if want.Source != got.Source || want.SourceID != got.SourceID {
		details = append(details, fmt.Sprintf("line item %s: natural key is (%s, %s), want (%s, %s)", want.ID, got.Source, got.SourceID, want.Source, want.SourceID))
	}

	return details
}

func readError(store Store, err error) string {
	return fmt.Sprintf("reading from the %s store failed: %v", store.Name(), err)
}
