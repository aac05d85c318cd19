package cubism

import (
	"strings"

	"github.com/Faultbox/live2d/pkg/core"
)

// ConstantFlags is the per-drawable flag byte fixed for the asset's lifetime.
// The engine returns these as raw bytes, so a value must pass Valid before it
// can be trusted as a flag set.
type ConstantFlags uint8

// Constant drawable flags.
const (
	BlendAdditive       = ConstantFlags(core.BlendAdditive)
	BlendMultiplicative = ConstantFlags(core.BlendMultiplicative)
	IsDoubleSided       = ConstantFlags(core.IsDoubleSided)
	IsInvertedMask      = ConstantFlags(core.IsInvertedMask)

	constantFlagsAll = BlendAdditive | BlendMultiplicative | IsDoubleSided | IsInvertedMask
)

// Has reports whether all bits of mask are set.
func (f ConstantFlags) Has(mask ConstantFlags) bool {
	return f&mask == mask
}

// Valid reports whether only defined bits are set.
func (f ConstantFlags) Valid() bool {
	return f&^constantFlagsAll == 0
}

func (f ConstantFlags) String() string {
	names := make([]string, 0, 4)
	if f.Has(BlendAdditive) {
		names = append(names, "additive")
	}
	if f.Has(BlendMultiplicative) {
		names = append(names, "multiplicative")
	}
	if f.Has(IsDoubleSided) {
		names = append(names, "double-sided")
	}
	if f.Has(IsInvertedMask) {
		names = append(names, "inverted-mask")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// DynamicFlags is the per-drawable flag byte the engine rewrites on every
// update pass. Did-change bits report transitions since the previous update;
// IsVisible is state, not a transition.
type DynamicFlags uint8

// Dynamic drawable flags.
const (
	IsVisible                = DynamicFlags(core.IsVisible)
	VisibilityDidChange      = DynamicFlags(core.VisibilityDidChange)
	OpacityDidChange         = DynamicFlags(core.OpacityDidChange)
	DrawOrderDidChange       = DynamicFlags(core.DrawOrderDidChange)
	RenderOrderDidChange     = DynamicFlags(core.RenderOrderDidChange)
	VertexPositionsDidChange = DynamicFlags(core.VertexPositionsDidChange)

	dynamicFlagsAll = IsVisible | VisibilityDidChange | OpacityDidChange |
		DrawOrderDidChange | RenderOrderDidChange | VertexPositionsDidChange
)

// Has reports whether all bits of mask are set.
func (f DynamicFlags) Has(mask DynamicFlags) bool {
	return f&mask == mask
}

// Valid reports whether only defined bits are set.
func (f DynamicFlags) Valid() bool {
	return f&^dynamicFlagsAll == 0
}

func (f DynamicFlags) String() string {
	names := make([]string, 0, 6)
	if f.Has(IsVisible) {
		names = append(names, "visible")
	}
	if f.Has(VisibilityDidChange) {
		names = append(names, "visibility-changed")
	}
	if f.Has(OpacityDidChange) {
		names = append(names, "opacity-changed")
	}
	if f.Has(DrawOrderDidChange) {
		names = append(names, "draw-order-changed")
	}
	if f.Has(RenderOrderDidChange) {
		names = append(names, "render-order-changed")
	}
	if f.Has(VertexPositionsDidChange) {
		names = append(names, "vertices-changed")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
