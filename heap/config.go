package heap

import cerrors "github.com/cockroachdb/errors"

// Config is the runtime-checked replacement for the allocator's historical
// compile-time constants. DefaultConfig reproduces them exactly.
type Config struct {
	// NumLists is the number of segregated free lists (directory slots).
	NumLists uint32

	// WordSize is the machine word width in bytes. DSize and Alignment are
	// always derived from it (DSize = 2*WordSize, Alignment = DSize) and
	// cannot be set independently.
	WordSize uint32

	// ChunkSize is the minimum number of bytes requested from the region
	// provider on a heap-growth miss.
	ChunkSize uint32

	// CheckOnFree enables an automatic Check() at the end of every Free
	// call, mirroring the spec's single compile-time `runheaptest` toggle.
	CheckOnFree bool
}

// DefaultConfig mirrors NUMLISTS=12, CHUNKSIZE=32, WSIZE=4 with the checker
// disabled, matching the distilled spec's compile-time constants.
var DefaultConfig = Config{
	NumLists:    12,
	WordSize:    4,
	ChunkSize:   32,
	CheckOnFree: false,
}

// DSize returns the double-word size (header+footer pair width).
func (c Config) DSize() uint32 { return 2 * c.WordSize }

// Alignment returns the payload alignment, equal to DSize.
func (c Config) Alignment() uint32 { return c.DSize() }

// MinBlockSize returns the smallest legal block size: header + two link
// words + footer.
func (c Config) MinBlockSize() uint32 { return 4 * c.WordSize }

// NewConfig validates a candidate configuration, rejecting values that
// would break DSize = 2*WordSize / Alignment = DSize or leave too few
// list slots to hold the sentinel large-block class.
func NewConfig(numLists, wordSize, chunkSize uint32, checkOnFree bool) (Config, error) {
	cfg := Config{NumLists: numLists, WordSize: wordSize, ChunkSize: chunkSize, CheckOnFree: checkOnFree}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.WordSize == 0 || c.WordSize%2 != 0 {
		return cerrors.Wrapf(ErrBadConfig, "word size %d must be a positive even number", c.WordSize)
	}
	if c.NumLists < 2 {
		return cerrors.Wrapf(ErrBadConfig, "num lists %d must be at least 2", c.NumLists)
	}
	if c.ChunkSize == 0 || c.ChunkSize%(2*c.WordSize) != 0 {
		return cerrors.Wrapf(ErrBadConfig, "chunk size %d must be a multiple of %d", c.ChunkSize, 2*c.WordSize)
	}
	return nil
}
