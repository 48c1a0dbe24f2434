package option

import (
	"strconv"
	"sync/atomic"
)

// Sequence mints monotonically increasing option ids. Each select controller
// owns one, so ids never leak across controllers (or tests).
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a sequence whose ids look like "<prefix>-1", "<prefix>-2", ...
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "option"
	}
	return &Sequence{prefix: prefix}
}

var defaultSequence = NewSequence("option")

// DefaultSequence returns the process-wide sequence used when a registry is
// created without one.
func DefaultSequence() *Sequence {
	return defaultSequence
}

// Next returns a fresh id.
func (s *Sequence) Next() string {
	return s.prefix + "-" + strconv.FormatUint(s.n.Add(1), 10)
}

// Issued returns how many ids have been minted.
func (s *Sequence) Issued() uint64 {
	return s.n.Load()
}
