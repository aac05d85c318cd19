// Package core exposes the flat function boundary of the Live2D Cubism Core
// native library. It carries no policy of its own: every entry point is a raw
// function value resolved from the shared library at load time, with pointer
// arguments typed as unsafe.Pointer and counts/sizes as the engine declares
// them. The safe API lives in pkg/cubism.
package core

import (
	"errors"
	"unsafe"
)

// Core boundary errors.
var (
	ErrMissingSymbol       = errors.New("missing cubism core symbol")
	ErrUnsupportedPlatform = errors.New("cubism core loading is not supported on this platform")
)

// Engine-mandated buffer alignments, in bytes.
const (
	AlignofMoc   = 64
	AlignofModel = 16
)

// Raw moc3 format version codes as reported by csmGetMocVersion.
const (
	MocVersionUnknown uint32 = 0
	MocVersion30      uint32 = 1
	MocVersion33      uint32 = 2
	MocVersion40      uint32 = 3
)

// Constant drawable flag bits.
const (
	BlendAdditive       byte = 1 << 0
	BlendMultiplicative byte = 1 << 1
	IsDoubleSided       byte = 1 << 2
	IsInvertedMask      byte = 1 << 3
)

// Dynamic drawable flag bits.
const (
	IsVisible                byte = 1 << 0
	VisibilityDidChange      byte = 1 << 1
	OpacityDidChange         byte = 1 << 2
	DrawOrderDidChange       byte = 1 << 3
	RenderOrderDidChange     byte = 1 << 4
	VertexPositionsDidChange byte = 1 << 5
)

// Lib is the resolved entry-point table of one loaded Cubism Core library.
//
// Load fills it from a shared library. Tests may fill it with Go functions
// instead; the wrapper in pkg/cubism treats any fully populated Lib as the
// engine. Pointer results are either a valid pointer or nil (failure); count
// results are negative on failure; array results are parallel, same-length
// arrays as documented by the engine.
type Lib struct {
	GetVersion          func() uint32
	GetLatestMocVersion func() uint32
	GetMocVersion       func(address unsafe.Pointer, size uint32) uint32
	ReviveMocInPlace    func(address unsafe.Pointer, size uint32) unsafe.Pointer

	GetSizeofModel            func(moc unsafe.Pointer) uint32
	InitializeModelInPlace    func(moc, address unsafe.Pointer, size uint32) unsafe.Pointer
	UpdateModel               func(model unsafe.Pointer)
	ResetDrawableDynamicFlags func(model unsafe.Pointer)
	ReadCanvasInfo            func(model, sizeInPixels, originInPixels, pixelsPerUnit unsafe.Pointer)

	GetParameterCount         func(model unsafe.Pointer) int32
	GetParameterIds           func(model unsafe.Pointer) unsafe.Pointer
	GetParameterMinimumValues func(model unsafe.Pointer) unsafe.Pointer
	GetParameterMaximumValues func(model unsafe.Pointer) unsafe.Pointer
	GetParameterDefaultValues func(model unsafe.Pointer) unsafe.Pointer
	GetParameterValues        func(model unsafe.Pointer) unsafe.Pointer
	GetParameterKeyCounts     func(model unsafe.Pointer) unsafe.Pointer
	GetParameterKeyValues     func(model unsafe.Pointer) unsafe.Pointer

	GetPartCount             func(model unsafe.Pointer) int32
	GetPartIds               func(model unsafe.Pointer) unsafe.Pointer
	GetPartOpacities         func(model unsafe.Pointer) unsafe.Pointer
	GetPartParentPartIndices func(model unsafe.Pointer) unsafe.Pointer

	GetDrawableCount           func(model unsafe.Pointer) int32
	GetDrawableIds             func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableConstantFlags   func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableDynamicFlags    func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableTextureIndices  func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableDrawOrders      func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableRenderOrders    func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableOpacities       func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableMaskCounts      func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableMasks           func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableVertexCounts    func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableVertexPositions func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableVertexUvs       func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableIndexCounts     func(model unsafe.Pointer) unsafe.Pointer
	GetDrawableIndices         func(model unsafe.Pointer) unsafe.Pointer

	// SetLogCallback registers fn as the engine's single diagnostic sink.
	// Passing nil unregisters the current sink.
	SetLogCallback func(fn func(message string))
}
