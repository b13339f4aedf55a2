//go:build unix

package region

import (
	"os"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// OS is a Provider backed by real, OS-committed memory. It reserves a
// large virtual range up front with PROT_NONE (grounded in
// cznic-memory's mmap_unix.go reserve-then-trim shape) and commits a
// growing prefix of it as Sbrk is called, so the returned address never
// moves once reserved.
type OS struct {
	mem       []byte
	reserved  uint32
	committed uint32
}

// NewOS reserves reserveBytes of virtual address space, rounded up to a
// whole number of pages, without committing any of it.
func NewOS(reserveBytes uint32) (*OS, error) {
	size := roundupPage(reserveBytes)
	mem, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, cerrors.Wrapf(err, "region: reserve %d bytes", size)
	}
	return &OS{mem: mem, reserved: uint32(len(mem))}, nil
}

// Init decommits the reservation back to zero bytes committed.
func (o *OS) Init() error {
	if o.committed > 0 {
		if err := unix.Mprotect(o.mem[:roundupPage(o.committed)], unix.PROT_NONE); err != nil {
			return cerrors.Wrapf(err, "region: decommit on init")
		}
	}
	o.committed = 0
	return nil
}

// Sbrk commits n additional bytes and returns the offset of the first new
// byte, or ErrExhausted if that would exceed the reservation.
func (o *OS) Sbrk(n uint32) (uint32, error) {
	newCommitted := o.committed + n
	if newCommitted < o.committed || newCommitted > o.reserved {
		return 0, cerrors.Wrapf(ErrExhausted, "requested %d bytes, only %d remain of %d reserved", n, o.reserved-o.committed, o.reserved)
	}

	oldRounded := roundupPage(o.committed)
	newRounded := roundupPage(newCommitted)
	if newRounded > oldRounded {
		if err := unix.Mprotect(o.mem[:newRounded], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, cerrors.Wrapf(err, "region: commit %d bytes", newRounded-oldRounded)
		}
	}

	old := o.committed
	o.committed = newCommitted
	return old, nil
}

// Lo always returns 0.
func (o *OS) Lo() uint32 { return 0 }

// Hi returns the current committed byte count.
func (o *OS) Hi() uint32 { return o.committed }

// Bytes returns the committed prefix of the reservation.
func (o *OS) Bytes() []byte { return o.mem[:o.committed] }

// Close releases the entire reservation back to the OS.
func (o *OS) Close() error {
	return unix.Munmap(o.mem)
}

func roundupPage(n uint32) uint32 {
	ps := uint32(os.Getpagesize())
	if n%ps == 0 {
		return n
	}
	return n + ps - n%ps
}
