package core

import "unsafe"

// AlignedBytes is a byte buffer whose first byte sits on a caller-chosen
// alignment boundary. The engine casts moc and model buffers to structured
// records in place, so it refuses (or worse, misbehaves on) misaligned memory.
type AlignedBytes struct {
	raw  []byte
	data []byte
}

// NewAlignedBytes allocates a zeroed buffer of size bytes aligned to align.
// align must be a positive power of two.
func NewAlignedBytes(size, align int) *AlignedBytes {
	if align <= 0 || align&(align-1) != 0 {
		panic("core: alignment must be a positive power of two")
	}
	if size < 0 {
		panic("core: negative buffer size")
	}
	raw := make([]byte, size+align)
	off := int((uintptr(align) - uintptr(unsafe.Pointer(&raw[0]))&uintptr(align-1)) & uintptr(align-1))
	return &AlignedBytes{raw: raw, data: raw[off : off+size]}
}

// AlignedBytesFrom copies src into a new buffer aligned to align.
func AlignedBytesFrom(src []byte, align int) *AlignedBytes {
	b := NewAlignedBytes(len(src), align)
	copy(b.data, src)
	return b
}

// Bytes returns the aligned payload. Mutating it mutates the buffer.
func (b *AlignedBytes) Bytes() []byte {
	return b.data
}

// Len returns the payload length in bytes.
func (b *AlignedBytes) Len() int {
	return len(b.data)
}

// Ptr returns the aligned base address. The pointer stays valid for the
// lifetime of the AlignedBytes value.
func (b *AlignedBytes) Ptr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b.data))
}
