//go:build windows

package region

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// OS is a Provider backed by real, OS-committed memory, mirroring the unix
// build's reserve-then-commit shape (cznic-memory's mmap_windows.go used
// raw VirtualAlloc via syscall.LazyDLL before x/sys/windows carried a typed
// wrapper; this module uses the typed wrapper instead).
type OS struct {
	base      uintptr
	mem       []byte
	reserved  uint32
	committed uint32
}

// NewOS reserves reserveBytes of address space without committing it.
func NewOS(reserveBytes uint32) (*OS, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(reserveBytes), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, cerrors.Wrapf(err, "region: reserve %d bytes", reserveBytes)
	}
	return &OS{base: addr, reserved: reserveBytes}, nil
}

// Init decommits back to zero bytes committed.
func (o *OS) Init() error {
	if o.committed > 0 {
		if err := windows.VirtualFree(o.base, uintptr(o.committed), windows.MEM_DECOMMIT); err != nil {
			return cerrors.Wrapf(err, "region: decommit on init")
		}
	}
	o.committed = 0
	o.mem = nil
	return nil
}

// Sbrk commits n additional bytes and returns the offset of the first new
// byte, or ErrExhausted if that would exceed the reservation.
func (o *OS) Sbrk(n uint32) (uint32, error) {
	newCommitted := o.committed + n
	if newCommitted < o.committed || newCommitted > o.reserved {
		return 0, cerrors.Wrapf(ErrExhausted, "requested %d bytes, only %d remain of %d reserved", n, o.reserved-o.committed, o.reserved)
	}

	if _, err := windows.VirtualAlloc(o.base, uintptr(newCommitted), windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
		return 0, cerrors.Wrapf(err, "region: commit %d bytes", newCommitted-o.committed)
	}

	old := o.committed
	o.committed = newCommitted
	o.mem = unsafe.Slice((*byte)(unsafe.Pointer(o.base)), o.committed)
	return old, nil
}

// Lo always returns 0.
func (o *OS) Lo() uint32 { return 0 }

// Hi returns the current committed byte count.
func (o *OS) Hi() uint32 { return o.committed }

// Bytes returns the committed prefix of the reservation.
func (o *OS) Bytes() []byte { return o.mem }

// Close releases the entire reservation back to the OS.
func (o *OS) Close() error {
	return windows.VirtualFree(o.base, 0, windows.MEM_RELEASE)
}
