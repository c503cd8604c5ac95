//go:build !unix

package brk

// MapBrk falls back to an ordinary allocation when anonymous mappings are
// not available.
type MapBrk struct {
	arena
}

// NewMap reserves limit bytes and returns a MapBrk with the break at zero.
func NewMap(limit int64) (*MapBrk, error) {
	if limit <= 0 {
		return nil, ErrBadLimit
	}
	return &MapBrk{arena{buf: make([]byte, limit)}}, nil
}

// Close releases the reservation. The heap must not be used afterwards.
func (m *MapBrk) Close() error {
	m.buf = nil
	m.brk = 0
	return nil
}
