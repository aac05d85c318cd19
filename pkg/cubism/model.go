package cubism

import (
	"fmt"
	"unsafe"

	"github.com/Faultbox/live2d/pkg/core"
)

// Vector2 is a 2D coordinate pair, layout-compatible with the engine's
// vector record.
type Vector2 struct {
	X, Y float32
}

// Canvas describes the model canvas as reported by the engine.
type Canvas struct {
	// SizeInPixels is the canvas dimensions.
	SizeInPixels Vector2
	// OriginInPixels is the model origin on the canvas.
	OriginInPixels Vector2
	// PixelsPerUnit scales pixels to model units.
	PixelsPerUnit float32
}

// Model is a live instance initialized from a Moc. It owns the aligned
// instance buffer the engine evaluates in place, retains its Moc, and
// exposes the extracted parameter/part/drawable facets.
//
// A Model is single-writer: one goroutine mutates and updates it at a time.
// Read-only inspection may be shared once no mutation is in flight.
type Model struct {
	moc    *Moc
	lib    *core.Lib
	buf    *core.AlignedBytes
	params parameters
	parts  partsData
	draws  drawablesData
}

// parameters holds validated views into the instance buffer's parameter
// arrays. values is caller-mutable; everything else is fixed at construction.
type parameters struct {
	ids    []string
	index  map[string]int
	min    []float32
	max    []float32
	def    []float32
	values []float32
	keys   [][]float32
}

// partsData holds validated views into the instance buffer's part arrays.
// opacities is caller-mutable.
type partsData struct {
	ids       []string
	index     map[string]int
	opacities []float32
	parents   []PartParent
}

// drawablesData holds validated views into the instance buffer's drawable
// arrays. dynFlags, drawOrders, renderOrders, opacities, and the vertex
// position contents are rewritten by the engine on every update pass;
// dynFlags and opacities are therefore revalidated on read.
type drawablesData struct {
	ids             []string
	index           map[string]int
	constFlags      []ConstantFlags
	dynFlags        []DynamicFlags
	texIndices      []int32
	drawOrders      []int32
	renderOrders    []int32
	opacities       []float32
	masks           [][]int32
	vertexPositions [][]Vector2
	vertexUVs       [][]Vector2
	indices         [][]uint16
}

// NewModel asks the engine for the instance size this moc needs, initializes
// a zeroed aligned buffer in place, and extracts and validates all three
// facets. Any malformed engine array fails construction as a whole.
func (m *Moc) NewModel() (*Model, error) {
	size := m.lib.GetSizeofModel(m.ptr())
	if size == 0 {
		return nil, ErrModelInitFailed
	}
	buf := core.NewAlignedBytes(int(size), core.AlignofModel)
	if m.lib.InitializeModelInPlace(m.ptr(), buf.Ptr(), size) == nil {
		return nil, ErrModelInitFailed
	}

	model := &Model{moc: m, lib: m.lib, buf: buf}
	mp := buf.Ptr()
	var err error
	if model.params, err = extractParameters(m.lib, mp); err != nil {
		return nil, err
	}
	if model.parts, err = extractParts(m.lib, mp); err != nil {
		return nil, err
	}
	if model.draws, err = extractDrawables(m.lib, mp); err != nil {
		return nil, err
	}
	return model, nil
}

func extractParameters(lib *core.Lib, mp unsafe.Pointer) (parameters, error) {
	var p parameters

	n, err := nonNegative(lib.GetParameterCount(mp), "parameter")
	if err != nil {
		return p, err
	}
	if p.ids, p.index, err = extractIDs(lib.GetParameterIds(mp), n, "parameter ids"); err != nil {
		return p, err
	}
	if p.min, err = view[float32](lib.GetParameterMinimumValues(mp), n, "parameter min values"); err != nil {
		return p, err
	}
	p.max, err = viewChecked(lib.GetParameterMaximumValues(mp), n, "parameter max values",
		func(i int, v float32) bool { return v >= p.min[i]-epsilon })
	if err != nil {
		return p, err
	}
	p.def, err = viewChecked(lib.GetParameterDefaultValues(mp), n, "parameter default values",
		func(i int, v float32) bool { return v >= p.min[i]-epsilon && v <= p.max[i]+epsilon })
	if err != nil {
		return p, err
	}
	if p.values, err = view[float32](lib.GetParameterValues(mp), n, "parameter values"); err != nil {
		return p, err
	}

	keyCounts, err := view[int32](lib.GetParameterKeyCounts(mp), n, "parameter key counts")
	if err != nil {
		return p, err
	}
	keyPtrs, err := view[unsafe.Pointer](lib.GetParameterKeyValues(mp), n, "parameter key values")
	if err != nil {
		return p, err
	}
	p.keys, err = nestedChecked(keyCounts, keyPtrs, "parameter key values",
		func(i, _ int, v float32) bool { return v >= p.min[i]-epsilon && v <= p.max[i]+epsilon })
	if err != nil {
		return p, err
	}
	return p, nil
}

func extractParts(lib *core.Lib, mp unsafe.Pointer) (partsData, error) {
	var p partsData

	n, err := nonNegative(lib.GetPartCount(mp), "part")
	if err != nil {
		return p, err
	}
	if p.ids, p.index, err = extractIDs(lib.GetPartIds(mp), n, "part ids"); err != nil {
		return p, err
	}
	if p.opacities, err = view[float32](lib.GetPartOpacities(mp), n, "part opacities"); err != nil {
		return p, err
	}
	p.parents, err = viewChecked(lib.GetPartParentPartIndices(mp), n, "part parent indices",
		func(_ int, v PartParent) bool { return v >= PartRoot && int(v) < n })
	if err != nil {
		return p, err
	}
	return p, nil
}

func extractDrawables(lib *core.Lib, mp unsafe.Pointer) (drawablesData, error) {
	var d drawablesData

	n, err := nonNegative(lib.GetDrawableCount(mp), "drawable")
	if err != nil {
		return d, err
	}
	if d.ids, d.index, err = extractIDs(lib.GetDrawableIds(mp), n, "drawable ids"); err != nil {
		return d, err
	}
	d.constFlags, err = viewChecked(lib.GetDrawableConstantFlags(mp), n, "drawable constant flags",
		func(_ int, f ConstantFlags) bool { return f.Valid() })
	if err != nil {
		return d, err
	}
	d.dynFlags, err = viewChecked(lib.GetDrawableDynamicFlags(mp), n, "drawable dynamic flags",
		func(_ int, f DynamicFlags) bool { return f.Valid() })
	if err != nil {
		return d, err
	}
	d.texIndices, err = viewChecked(lib.GetDrawableTextureIndices(mp), n, "drawable texture indices",
		func(_ int, v int32) bool { return v >= 0 })
	if err != nil {
		return d, err
	}
	if d.drawOrders, err = view[int32](lib.GetDrawableDrawOrders(mp), n, "drawable draw orders"); err != nil {
		return d, err
	}
	if d.renderOrders, err = view[int32](lib.GetDrawableRenderOrders(mp), n, "drawable render orders"); err != nil {
		return d, err
	}
	d.opacities, err = viewChecked(lib.GetDrawableOpacities(mp), n, "drawable opacities",
		func(_ int, o float32) bool { return validOpacity(o) })
	if err != nil {
		return d, err
	}

	maskCounts, err := view[int32](lib.GetDrawableMaskCounts(mp), n, "drawable mask counts")
	if err != nil {
		return d, err
	}
	maskPtrs, err := view[unsafe.Pointer](lib.GetDrawableMasks(mp), n, "drawable masks")
	if err != nil {
		return d, err
	}
	d.masks, err = nestedChecked(maskCounts, maskPtrs, "drawable masks",
		func(_, _ int, v int32) bool { return v >= 0 })
	if err != nil {
		return d, err
	}

	vertexCounts, err := view[int32](lib.GetDrawableVertexCounts(mp), n, "drawable vertex counts")
	if err != nil {
		return d, err
	}
	posPtrs, err := view[unsafe.Pointer](lib.GetDrawableVertexPositions(mp), n, "drawable vertex positions")
	if err != nil {
		return d, err
	}
	if d.vertexPositions, err = nestedChecked[Vector2](vertexCounts, posPtrs, "drawable vertex positions", nil); err != nil {
		return d, err
	}
	uvPtrs, err := view[unsafe.Pointer](lib.GetDrawableVertexUvs(mp), n, "drawable vertex uvs")
	if err != nil {
		return d, err
	}
	if d.vertexUVs, err = nestedChecked[Vector2](vertexCounts, uvPtrs, "drawable vertex uvs", nil); err != nil {
		return d, err
	}

	indexCounts, err := view[int32](lib.GetDrawableIndexCounts(mp), n, "drawable index counts")
	if err != nil {
		return d, err
	}
	indexPtrs, err := view[unsafe.Pointer](lib.GetDrawableIndices(mp), n, "drawable indices")
	if err != nil {
		return d, err
	}
	d.indices = make([][]uint16, n)
	for i := range indexCounts {
		// Triangle lists: the count is zero or a multiple of three.
		if indexCounts[i] < 0 || indexCounts[i]%3 != 0 {
			return d, fmt.Errorf("%w: drawable indices[%d]", ErrInvalidCount, i)
		}
		s, err := view[uint16](indexPtrs[i], int(indexCounts[i]), "drawable indices")
		if err != nil {
			return d, err
		}
		d.indices[i] = s
	}
	return d, nil
}

// Moc returns the compiled asset this model was created from.
func (m *Model) Moc() *Moc {
	return m.moc
}

// NewModelFrom creates a fresh instance from the same moc as other. No state
// is copied; the new model starts at its defaults. Clone is the state-copying
// variant.
func NewModelFrom(other *Model) (*Model, error) {
	return other.moc.NewModel()
}

// Clone creates a fresh instance from the same moc, copies this model's
// current parameter values and part opacities into it, and runs one update
// pass so the clone's dynamic facets are consistent. Dynamic drawable state
// is recomputed, not copied.
func (m *Model) Clone() (*Model, error) {
	clone, err := m.moc.NewModel()
	if err != nil {
		return nil, err
	}
	clone.SetParameterValues(m.params.values)
	clone.SetPartOpacities(m.parts.opacities)
	clone.Update()
	return clone, nil
}

func (m *Model) ptr() unsafe.Pointer {
	return m.buf.Ptr()
}

// Update is the evaluation transition: it resets the drawable dynamic flags
// to their baseline (did-change bits cleared, visibility preserved) and has
// the engine recompute all parameter-dependent dynamic state in place. Call
// it after mutating parameter values or part opacities and before reading
// dynamic drawable data; dynamic views reflect the buffer live, so any read
// after Update observes the post-evaluation state.
func (m *Model) Update() {
	m.lib.ResetDrawableDynamicFlags(m.ptr())
	m.lib.UpdateModel(m.ptr())
}

// ReadCanvasInfo queries the model canvas descriptor.
func (m *Model) ReadCanvasInfo() Canvas {
	var size, origin Vector2
	var ppu float32
	m.lib.ReadCanvasInfo(m.ptr(),
		unsafe.Pointer(&size), unsafe.Pointer(&origin), unsafe.Pointer(&ppu))
	return Canvas{SizeInPixels: size, OriginInPixels: origin, PixelsPerUnit: ppu}
}

// ParameterCount returns the number of parameters.
func (m *Model) ParameterCount() int {
	return len(m.params.ids)
}

// ParameterIDs returns all parameter identifiers in index order.
func (m *Model) ParameterIDs() []string {
	return m.params.ids
}

// ParameterIndex returns the index of the parameter with the given id.
func (m *Model) ParameterIndex(id string) (int, bool) {
	i, ok := m.params.index[id]
	return i, ok
}

// ParameterMinValues returns the per-parameter minimum values.
func (m *Model) ParameterMinValues() []float32 {
	return m.params.min
}

// ParameterMaxValues returns the per-parameter maximum values.
func (m *Model) ParameterMaxValues() []float32 {
	return m.params.max
}

// ParameterDefaultValues returns the per-parameter default values.
func (m *Model) ParameterDefaultValues() []float32 {
	return m.params.def
}

// ParameterKeyValues returns the per-parameter keyframe values.
func (m *Model) ParameterKeyValues() [][]float32 {
	return m.params.keys
}

// ParameterValues returns the live parameter value array. Writes through the
// returned slice mutate the model; call Update afterwards. The wrapper does
// not clamp values, the engine may clamp internally during evaluation.
func (m *Model) ParameterValues() []float32 {
	return m.params.values
}

// SetParameterValues copies values over all current parameter values.
// Panics if the length does not match ParameterCount.
func (m *Model) SetParameterValues(values []float32) {
	if len(values) != len(m.params.values) {
		panic(fmt.Sprintf("cubism: %d parameter values for %d parameters",
			len(values), len(m.params.values)))
	}
	copy(m.params.values, values)
}

// SetParameterValue sets the value of the parameter with the given id and
// returns the previous value. An unknown id is a caller bug and panics.
func (m *Model) SetParameterValue(id string, value float32) float32 {
	i, ok := m.params.index[id]
	if !ok {
		panic(fmt.Sprintf("cubism: id %q does not exist", id))
	}
	return m.SetParameterValueAt(i, value)
}

// SetParameterValueAt sets the value of the parameter at index and returns
// the previous value. Panics if index is out of range.
func (m *Model) SetParameterValueAt(index int, value float32) float32 {
	if index < 0 || index >= len(m.params.values) {
		panic(fmt.Sprintf("cubism: parameter index %d out of range (%d)",
			index, len(m.params.values)))
	}
	prev := m.params.values[index]
	m.params.values[index] = value
	return prev
}

// PartCount returns the number of parts.
func (m *Model) PartCount() int {
	return len(m.parts.ids)
}

// PartIDs returns all part identifiers in index order.
func (m *Model) PartIDs() []string {
	return m.parts.ids
}

// PartIndex returns the index of the part with the given id.
func (m *Model) PartIndex(id string) (int, bool) {
	i, ok := m.parts.index[id]
	return i, ok
}

// PartParents returns the per-part parent encoding.
func (m *Model) PartParents() []PartParent {
	return m.parts.parents
}

// PartOpacities returns the live part opacity array. Writes through the
// returned slice mutate the model; call Update afterwards.
func (m *Model) PartOpacities() []float32 {
	return m.parts.opacities
}

// SetPartOpacities copies opacities over all current part opacities.
// Panics if the length does not match PartCount.
func (m *Model) SetPartOpacities(opacities []float32) {
	if len(opacities) != len(m.parts.opacities) {
		panic(fmt.Sprintf("cubism: %d part opacities for %d parts",
			len(opacities), len(m.parts.opacities)))
	}
	copy(m.parts.opacities, opacities)
}

// SetPartOpacity sets the opacity of the part with the given id and returns
// the previous value. An unknown id is a caller bug and panics.
func (m *Model) SetPartOpacity(id string, opacity float32) float32 {
	i, ok := m.parts.index[id]
	if !ok {
		panic(fmt.Sprintf("cubism: id %q does not exist", id))
	}
	return m.SetPartOpacityAt(i, opacity)
}

// SetPartOpacityAt sets the opacity of the part at index and returns the
// previous value. Panics if index is out of range.
func (m *Model) SetPartOpacityAt(index int, opacity float32) float32 {
	if index < 0 || index >= len(m.parts.opacities) {
		panic(fmt.Sprintf("cubism: part index %d out of range (%d)",
			index, len(m.parts.opacities)))
	}
	prev := m.parts.opacities[index]
	m.parts.opacities[index] = opacity
	return prev
}

// DrawableCount returns the number of drawables.
func (m *Model) DrawableCount() int {
	return len(m.draws.ids)
}

// DrawableIDs returns all drawable identifiers in index order.
func (m *Model) DrawableIDs() []string {
	return m.draws.ids
}

// DrawableIndex returns the index of the drawable with the given id.
func (m *Model) DrawableIndex(id string) (int, bool) {
	i, ok := m.draws.index[id]
	return i, ok
}

// DrawableConstantFlags returns the per-drawable constant flags.
func (m *Model) DrawableConstantFlags() []ConstantFlags {
	return m.draws.constFlags
}

// DrawableDynamicFlags returns the per-drawable dynamic flags, revalidated
// on every call because the engine rewrites them on each update pass.
func (m *Model) DrawableDynamicFlags() ([]DynamicFlags, error) {
	for i, f := range m.draws.dynFlags {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: dynamic[%d]", ErrInvalidFlags, i)
		}
	}
	return m.draws.dynFlags, nil
}

// DrawableTextureIndices returns the per-drawable texture indices.
func (m *Model) DrawableTextureIndices() []int32 {
	return m.draws.texIndices
}

// DrawableDrawOrders returns the per-drawable draw orders. Contents change
// on every update pass.
func (m *Model) DrawableDrawOrders() []int32 {
	return m.draws.drawOrders
}

// DrawableRenderOrders returns the per-drawable render orders. Contents
// change on every update pass.
func (m *Model) DrawableRenderOrders() []int32 {
	return m.draws.renderOrders
}

// DrawableOpacities returns the per-drawable opacities, revalidated on every
// call because the engine rewrites them on each update pass.
func (m *Model) DrawableOpacities() ([]float32, error) {
	for i, o := range m.draws.opacities {
		if !validOpacity(o) {
			return nil, fmt.Errorf("%w: drawable opacities[%d]", ErrInvalidData, i)
		}
	}
	return m.draws.opacities, nil
}

// DrawableMasks returns the per-drawable mask index lists.
func (m *Model) DrawableMasks() [][]int32 {
	return m.draws.masks
}

// DrawableVertexPositions returns the per-drawable vertex positions.
// Contents change on every update pass.
func (m *Model) DrawableVertexPositions() [][]Vector2 {
	return m.draws.vertexPositions
}

// DrawableVertexUVs returns the per-drawable vertex UV coordinates.
func (m *Model) DrawableVertexUVs() [][]Vector2 {
	return m.draws.vertexUVs
}

// DrawableIndices returns the per-drawable triangle index lists.
func (m *Model) DrawableIndices() [][]uint16 {
	return m.draws.indices
}
