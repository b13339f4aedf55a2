package region

import cerrors "github.com/cockroachdb/errors"

// Sim is a deterministic, in-process Provider. It pre-reserves a fixed
// capacity up front (grounded in the teacher's fixed-size
// `[HEAP_CAP_WORDS]uintptr` backing array) and simulates sbrk by bumping a
// logical break offset within that reservation. Because the capacity is
// reserved once and never reallocated, the address behind Bytes() never
// moves, satisfying the "contiguous, monotonically growable" contract
// without needing OS privileges.
type Sim struct {
	buf []byte
	brk uint32
}

// NewSim creates a Sim with the given total capacity in bytes. capacity
// bounds how far the region can grow; once exhausted, Sbrk returns
// ErrExhausted.
func NewSim(capacity uint32) *Sim {
	return &Sim{buf: make([]byte, capacity)}
}

// Init resets the break to 0. The backing capacity is unchanged.
func (s *Sim) Init() error {
	s.brk = 0
	return nil
}

// Sbrk extends the region by n bytes, or fails if that would exceed the
// reserved capacity.
func (s *Sim) Sbrk(n uint32) (uint32, error) {
	if uint64(s.brk)+uint64(n) > uint64(len(s.buf)) {
		return 0, cerrors.Wrapf(ErrExhausted, "requested %d bytes, only %d remain of %d capacity", n, uint32(len(s.buf))-s.brk, len(s.buf))
	}
	old := s.brk
	s.brk += n
	return old, nil
}

// Lo always returns 0.
func (s *Sim) Lo() uint32 { return 0 }

// Hi returns the current break offset.
func (s *Sim) Hi() uint32 { return s.brk }

// Bytes returns the committed prefix of the reservation.
func (s *Sim) Bytes() []byte { return s.buf[:s.brk] }

// Capacity returns the total reserved capacity, committed or not.
func (s *Sim) Capacity() uint32 { return uint32(len(s.buf)) }
