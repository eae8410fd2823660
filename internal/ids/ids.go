// Package ids generates the prefixed identifiers used for all rows in the
// relational store, for example evt_01HV3E2QJ0X5T9GZK4M8R6W2ND.
//
// The suffix is a ULID: lexicographic order follows creation time, and within
// one millisecond the entropy is incremented rather than re-randomized, so
// identifiers from one generator always sort in generation order.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for all persisted resources.
const (
	PrefixLineItem          = "li"
	PrefixEvent             = "evt"
	PrefixCategory          = "cat"
	PrefixTag               = "tag"
	PrefixEventLineItem     = "eli"
	PrefixEventTag          = "etg"
	PrefixIntegrationAcct   = "acc"
	PrefixUser              = "usr"
	PrefixSourceTransaction = "txn"
)

// Generator produces prefixed, time-sortable identifiers. It is safe for
// concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// ID returns "{prefix}_{ULID}".
func (g *Generator) ID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return prefix + "_" + id.String()
}

var defaultGenerator = NewGenerator()

// New returns an identifier from the package-level generator.
func New(prefix string) string {
	return defaultGenerator.ID(prefix)
}
