//go:build unix

package brk

import "golang.org/x/sys/unix"

// MapBrk is a Brk over an anonymous memory mapping. The mapping is
// reserved once at construction, so the kernel backs pages lazily and the
// reservation never relocates.
type MapBrk struct {
	arena
}

// NewMap reserves limit bytes of anonymous memory and returns a MapBrk
// with the break at zero.
func NewMap(limit int64) (*MapBrk, error) {
	if limit <= 0 {
		return nil, ErrBadLimit
	}
	buf, err := unix.Mmap(-1, 0, int(limit),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &MapBrk{arena{buf: buf}}, nil
}

// Close unmaps the reservation. The heap must not be used afterwards.
func (m *MapBrk) Close() error {
	if m.buf == nil {
		return nil
	}
	err := unix.Munmap(m.buf)
	m.buf = nil
	m.brk = 0
	return err
}
