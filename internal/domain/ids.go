package domain

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Display ID prefixes surfaced to callers, distinct from the UUID storage keys
const (
	ShopAccountIDPrefix      = "SA"
	SettlementPeriodIDPrefix = "SP"
	TransactionIDPrefix      = "TX"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewDisplayID returns a sortable human-readable id such as SP-01HZX3...
func NewDisplayID(prefix string, now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(now), entropy)
	return prefix + "-" + id.String()
}
