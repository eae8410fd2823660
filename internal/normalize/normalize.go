// Package normalize maps the raw transaction payloads of the four sources
// onto the canonical line item shape.
//
// Each source has its own typed raw record and one pure normalizer function.
// Normalizers never touch the network or the database, so every mapping can
// be tested with literal fixtures. Persistence, including id assignment, is
// the job of the ledger package.
package normalize

import (
	"time"
)

// Date layouts that occur in source payloads. Venmo omits the timezone on
// date_created, Splitwise uses full RFC 3339, manual cash entries are plain
// dates.
const (
	layoutVenmo = "2006-01-02T15:04:05"
	layoutCash  = "2006-01-02"
)

// parseDate converts a source-specific date string into POSIX seconds.
// Timestamps without a timezone are treated as UTC.
func parseDate(value string, layouts ...string) (int64, error) {
	var err error
	for _, layout := range layouts {
		var parsed time.Time
		parsed, err = time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return parsed.Unix(), nil
		}
	}

	return 0, err
}
