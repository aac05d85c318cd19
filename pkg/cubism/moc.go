package cubism

import (
	"fmt"
	"io"
	"math"
	"os"
	"unsafe"

	"github.com/Faultbox/live2d/pkg/core"
)

// Moc is a revived compiled asset. The engine validates and fixes up the
// bytes in place exactly once, at creation; after that the buffer is
// immutable and may back any number of models. A Moc stays alive as long as
// any Model created from it is reachable.
type Moc struct {
	lib  *core.Lib
	data *core.AlignedBytes
}

// NewMoc copies data into an aligned buffer, verifies its format version
// against the engine's latest supported revision, and revives it in place.
func (c *Core) NewMoc(data []byte) (*Moc, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, ErrMocTooLarge
	}
	buf := core.AlignedBytesFrom(data, core.AlignofMoc)
	size := uint32(buf.Len())

	version := MocVersion(c.lib.GetMocVersion(buf.Ptr(), size))
	if !version.SupportedBy(c.LatestMocVersion()) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMocVersion, version)
	}
	if c.lib.ReviveMocInPlace(buf.Ptr(), size) == nil {
		return nil, ErrInvalidMocData
	}

	return &Moc{lib: c.lib, data: buf}, nil
}

// NewMocFromReader reads all bytes from r and delegates to NewMoc.
func (c *Core) NewMocFromReader(r io.Reader) (*Moc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading moc data: %w", err)
	}
	return c.NewMoc(data)
}

// NewMocFromFile reads a .moc3 file and delegates to NewMoc.
func (c *Core) NewMocFromFile(path string) (*Moc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading moc file: %w", err)
	}
	return c.NewMoc(data)
}

// Version re-derives the moc3 format version from the stored bytes.
func (m *Moc) Version() MocVersion {
	return MocVersion(m.lib.GetMocVersion(m.data.Ptr(), uint32(m.data.Len())))
}

// Size returns the moc byte length.
func (m *Moc) Size() int {
	return m.data.Len()
}

func (m *Moc) ptr() unsafe.Pointer {
	return m.data.Ptr()
}
