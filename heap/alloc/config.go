package alloc

import "github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/internal/format"

// Policy selects the placement strategy used by free-list search.
// It is chosen once, at allocator construction time.
type Policy int

const (
	// FirstFit returns the first block large enough.
	FirstFit Policy = iota
	// BestFit returns the smallest block large enough.
	BestFit
	// WorstFit returns the largest block large enough.
	WorstFit
)

// String returns the policy name used in reports and flags.
func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a policy name (as produced by String) back to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "first-fit":
		return FirstFit, true
	case "best-fit":
		return BestFit, true
	case "worst-fit":
		return WorstFit, true
	default:
		return 0, false
	}
}

// Config carries the tunables of a heap.
type Config struct {
	// Alignment is the allocation granularity. Capacities are rounded up
	// to a multiple of it. Must be a power of two.
	Alignment int64

	// TrimThreshold is the footprint at or below which an edge block is
	// never released back to the break primitive.
	TrimThreshold int64

	// Policy is the placement strategy for free-list search.
	Policy Policy
}

// DefaultConfig mirrors the historical defaults: 8-byte granularity and a
// one-page trim threshold.
var DefaultConfig = Config{
	Alignment:     format.Alignment,
	TrimThreshold: 4096,
	Policy:        FirstFit,
}

// normalized fills zero fields from DefaultConfig and validates the rest.
func (c Config) normalized() (Config, error) {
	if c.Alignment == 0 {
		c.Alignment = DefaultConfig.Alignment
	}
	if !format.IsPowerOfTwo(c.Alignment) {
		return Config{}, ErrBadAlignment
	}
	if c.TrimThreshold == 0 {
		c.TrimThreshold = DefaultConfig.TrimThreshold
	}
	if c.TrimThreshold < 0 {
		return Config{}, ErrBadThreshold
	}
	return c, nil
}
