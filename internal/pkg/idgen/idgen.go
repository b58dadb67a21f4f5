// Package idgen mints the ids stored on characters, hirelings, proposals,
// tokens and roll log entries.
package idgen

import (
	"encoding/hex"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
)

// Generator hands out ids
type Generator interface {
	Generate() string
}

// PrefixedGenerator produces prefix_<base36 unix millis>_<8 hex>, e.g.
// char_lxq3k2p1_9f2c01ab. Ids sort by creation time within one prefix.
type PrefixedGenerator struct {
	prefix string
	clock  clock.Clock
}

// NewPrefixed returns a generator reading the system clock
func NewPrefixed(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix, clock: clock.New()}
}

// WithClock swaps the time source
func (g *PrefixedGenerator) WithClock(c clock.Clock) *PrefixedGenerator {
	g.clock = c
	return g
}

// Generate returns the next id
func (g *PrefixedGenerator) Generate() string {
	u := uuid.New()
	stamp := strconv.FormatInt(g.clock.Now().UnixMilli(), 36)
	return join(g.prefix, stamp+"_"+hex.EncodeToString(u[:4]))
}

// SequentialGenerator counts up from 1. Tests use it for stable ids.
type SequentialGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewSequential returns a counter starting at 1
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next id
func (g *SequentialGenerator) Generate() string {
	return join(g.prefix, strconv.FormatUint(g.n.Add(1), 10))
}

// UUIDGenerator is used where ids must not be guessable from creation time
type UUIDGenerator struct {
	prefix string
}

// NewUUID returns a generator of random v4 ids
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns the next id
func (g *UUIDGenerator) Generate() string {
	return join(g.prefix, uuid.NewString())
}

func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

var (
	_ Generator = (*PrefixedGenerator)(nil)
	_ Generator = (*SequentialGenerator)(nil)
	_ Generator = (*UUIDGenerator)(nil)
)
