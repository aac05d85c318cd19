package cubism

import (
	"fmt"
	"slices"
)

// StaticDrawable is the immutable description of one drawable: flags,
// texture, masking, and mesh topology. Vertex UVs and triangle indices never
// change after construction; only vertex positions (see DynamicDrawable) do.
type StaticDrawable struct {
	Index         int
	ID            string
	ConstantFlags ConstantFlags
	TextureIndex  int
	Masks         []int
	VertexUVs     []Vector2
	Indices       []int
}

// StaticDrawables is the keyed collection of static drawable records.
type StaticDrawables = Facet[StaticDrawable]

// StaticDrawables projects the model's immutable drawable data.
func (m *Model) StaticDrawables() StaticDrawables {
	d := &m.draws
	return newFacet(d.ids, d.index, func(i int) (StaticDrawable, error) {
		masks := make([]int, len(d.masks[i]))
		for j, v := range d.masks[i] {
			masks[j] = int(v)
		}
		indices := make([]int, len(d.indices[i]))
		for j, v := range d.indices[i] {
			indices[j] = int(v)
		}
		return StaticDrawable{
			Index:         i,
			ID:            d.ids[i],
			ConstantFlags: d.constFlags[i],
			TextureIndex:  int(d.texIndices[i]),
			Masks:         masks,
			VertexUVs:     slices.Clone(d.vertexUVs[i]),
			Indices:       indices,
		}, nil
	})
}

// DynamicDrawable is a snapshot of one drawable's engine-mutable state as of
// the model's last update pass.
type DynamicDrawable struct {
	Index           int
	ID              string
	DynamicFlags    DynamicFlags
	DrawOrder       int32
	RenderOrder     int32
	Opacity         float32
	VertexPositions []Vector2
}

// DynamicDrawables is the keyed collection of dynamic drawable snapshots.
// Fetching an element revalidates its flags and opacity, since the engine
// rewrites both on every update; a failed fetch reports that element without
// invalidating the model.
type DynamicDrawables = Facet[DynamicDrawable]

// DynamicDrawables projects the model's engine-mutable drawable data.
// Call Update before reading, or snapshots reflect pre-mutation state.
func (m *Model) DynamicDrawables() DynamicDrawables {
	d := &m.draws
	return newFacet(d.ids, d.index, func(i int) (DynamicDrawable, error) {
		flags := d.dynFlags[i]
		if !flags.Valid() {
			return DynamicDrawable{}, fmt.Errorf("%w: dynamic[%d]", ErrInvalidFlags, i)
		}
		opacity := d.opacities[i]
		if !validOpacity(opacity) {
			return DynamicDrawable{}, fmt.Errorf("%w: drawable opacities[%d]", ErrInvalidData, i)
		}
		return DynamicDrawable{
			Index:           i,
			ID:              d.ids[i],
			DynamicFlags:    flags,
			DrawOrder:       d.drawOrders[i],
			RenderOrder:     d.renderOrders[i],
			Opacity:         opacity,
			VertexPositions: slices.Clone(d.vertexPositions[i]),
		}, nil
	})
}
