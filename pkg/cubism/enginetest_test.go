package cubism

// A stub engine implementing the core.Lib contract in pure Go. It plays the
// role the native library plays in production: it owns the backing arrays,
// hands out raw pointers and counts, rewrites dynamic state on update, and
// can be told to produce malformed data so every validation path is
// exercisable without a .moc3 file or the shared library.

import (
	"unsafe"

	"github.com/Faultbox/live2d/pkg/core"
)

const (
	stubCoreVersion  = 0x04020001 // 4.2.1
	stubModelSize    = 1024
	stubMocHeaderLen = 8
)

type stubParam struct {
	id       string
	min, max float32
	def      float32
	keys     []float32
}

type stubPart struct {
	id      string
	parent  int32
	opacity float32
}

type stubDrawable struct {
	id          string
	constFlags  byte
	texture     int32
	masks       []int32
	vertexCount int
	indices     []uint16
	opacity     float32
}

type stubSpec struct {
	latestMocVersion uint32
	params           []stubParam
	parts            []stubPart
	drawables        []stubDrawable
	canvas           Canvas

	sizingFails bool
	initFails   bool
	// tamper runs after the model arrays are built, before initialization
	// returns, so tests can corrupt what extraction will see.
	tamper func(*stubModel)
}

// defaultStubSpec is the known-good three-parameter model from which most
// tests start.
func defaultStubSpec() stubSpec {
	return stubSpec{
		latestMocVersion: core.MocVersion40,
		params: []stubParam{
			{id: "A", min: 0, max: 1, def: 0, keys: []float32{0, 1}},
			{id: "B", min: -1, max: 1, def: 0, keys: []float32{-1, 0, 1}},
			{id: "C", min: 0, max: 10, def: 5},
		},
		parts: []stubPart{
			{id: "PartCore", parent: -1, opacity: 1},
			{id: "PartArm", parent: 0, opacity: 1},
		},
		drawables: []stubDrawable{
			{id: "D0", texture: 0, vertexCount: 3, indices: []uint16{0, 1, 2}, opacity: 1},
			{id: "D1", constFlags: core.BlendAdditive, texture: 1, masks: []int32{0},
				vertexCount: 4, indices: []uint16{0, 1, 2, 1, 2, 3}, opacity: 1},
		},
		canvas: Canvas{
			SizeInPixels:   Vector2{X: 2048, Y: 2048},
			OriginInPixels: Vector2{X: 1024, Y: 1024},
			PixelsPerUnit:  48,
		},
	}
}

type stubEngine struct {
	spec   stubSpec
	logFn  func(string)
	models map[unsafe.Pointer]*stubModel
	last   *stubModel
}

// stubModel owns the backing arrays one initialized instance hands out.
type stubModel struct {
	idBytes [][]byte // keeps the C strings reachable

	paramCount    int32
	paramIDPtrs   []unsafe.Pointer
	paramMin      []float32
	paramMax      []float32
	paramDef      []float32
	paramValues   []float32
	paramKeyCount []int32
	paramKeyPtrs  []unsafe.Pointer
	paramKeys     [][]float32

	partCount     int32
	partIDPtrs    []unsafe.Pointer
	partOpacities []float32
	partParents   []int32

	drawCount     int32
	drawIDPtrs    []unsafe.Pointer
	constFlags    []byte
	dynFlags      []byte
	texIndices    []int32
	drawOrders    []int32
	renderOrders  []int32
	drawOpacities []float32
	maskCounts    []int32
	maskPtrs      []unsafe.Pointer
	masks         [][]int32
	vertexCounts  []int32
	posPtrs       []unsafe.Pointer
	positions     [][]Vector2
	uvPtrs        []unsafe.Pointer
	uvs           [][]Vector2
	indexCounts   []int32
	indexPtrs     []unsafe.Pointer
	indices       [][]uint16
}

var stubZero byte

// ptrOf returns the data pointer of s, non-nil even for empty slices so that
// only deliberate tampering produces null arrays.
func ptrOf[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return unsafe.Pointer(&stubZero)
	}
	return unsafe.Pointer(&s[0])
}

func cstr(s string) []byte {
	return append([]byte(s), 0)
}

func newStubEngine(spec stubSpec) *stubEngine {
	if spec.latestMocVersion == 0 {
		spec.latestMocVersion = core.MocVersion40
	}
	return &stubEngine{spec: spec, models: make(map[unsafe.Pointer]*stubModel)}
}

// mocBytes builds a minimal well-formed stub moc: magic plus a version tag.
func (e *stubEngine) mocBytes(version uint32) []byte {
	b := make([]byte, stubMocHeaderLen)
	copy(b, "MOC3")
	b[4] = byte(version)
	return b
}

func (e *stubEngine) buildModel() *stubModel {
	sm := &stubModel{}
	spec := e.spec

	sm.paramCount = int32(len(spec.params))
	for _, p := range spec.params {
		id := cstr(p.id)
		sm.idBytes = append(sm.idBytes, id)
		sm.paramIDPtrs = append(sm.paramIDPtrs, unsafe.Pointer(&id[0]))
		sm.paramMin = append(sm.paramMin, p.min)
		sm.paramMax = append(sm.paramMax, p.max)
		sm.paramDef = append(sm.paramDef, p.def)
		sm.paramValues = append(sm.paramValues, p.def)
		keys := append([]float32(nil), p.keys...)
		sm.paramKeys = append(sm.paramKeys, keys)
		sm.paramKeyCount = append(sm.paramKeyCount, int32(len(keys)))
		sm.paramKeyPtrs = append(sm.paramKeyPtrs, ptrOf(keys))
	}

	sm.partCount = int32(len(spec.parts))
	for _, p := range spec.parts {
		id := cstr(p.id)
		sm.idBytes = append(sm.idBytes, id)
		sm.partIDPtrs = append(sm.partIDPtrs, unsafe.Pointer(&id[0]))
		sm.partOpacities = append(sm.partOpacities, p.opacity)
		sm.partParents = append(sm.partParents, p.parent)
	}

	sm.drawCount = int32(len(spec.drawables))
	for _, d := range spec.drawables {
		id := cstr(d.id)
		sm.idBytes = append(sm.idBytes, id)
		sm.drawIDPtrs = append(sm.drawIDPtrs, unsafe.Pointer(&id[0]))
		sm.constFlags = append(sm.constFlags, d.constFlags)
		sm.dynFlags = append(sm.dynFlags, core.IsVisible)
		sm.texIndices = append(sm.texIndices, d.texture)
		sm.drawOrders = append(sm.drawOrders, 0)
		sm.renderOrders = append(sm.renderOrders, 0)
		sm.drawOpacities = append(sm.drawOpacities, d.opacity)

		masks := append([]int32(nil), d.masks...)
		sm.masks = append(sm.masks, masks)
		sm.maskCounts = append(sm.maskCounts, int32(len(masks)))
		sm.maskPtrs = append(sm.maskPtrs, ptrOf(masks))

		positions := make([]Vector2, d.vertexCount)
		uvs := make([]Vector2, d.vertexCount)
		for v := range uvs {
			uvs[v] = Vector2{X: float32(v) * 0.1, Y: 1 - float32(v)*0.1}
		}
		sm.positions = append(sm.positions, positions)
		sm.uvs = append(sm.uvs, uvs)
		sm.vertexCounts = append(sm.vertexCounts, int32(d.vertexCount))
		sm.posPtrs = append(sm.posPtrs, ptrOf(positions))
		sm.uvPtrs = append(sm.uvPtrs, ptrOf(uvs))

		indices := append([]uint16(nil), d.indices...)
		sm.indices = append(sm.indices, indices)
		sm.indexCounts = append(sm.indexCounts, int32(len(indices)))
		sm.indexPtrs = append(sm.indexPtrs, ptrOf(indices))
	}

	return sm
}

// update recomputes all dynamic state from the current parameter values and
// part opacities. The transform is arbitrary but deterministic and pure, so
// repeated updates with unchanged inputs converge.
func (sm *stubModel) update() {
	for d := range sm.positions {
		var p float32
		if len(sm.paramValues) > 0 {
			p = sm.paramValues[min(d, len(sm.paramValues)-1)]
		}
		for v := range sm.positions[d] {
			next := Vector2{X: p + float32(v), Y: p - float32(v)}
			if next != sm.positions[d][v] {
				sm.dynFlags[d] |= core.VertexPositionsDidChange
			}
			sm.positions[d][v] = next
		}

		if int32(d) != sm.drawOrders[d] {
			sm.dynFlags[d] |= core.DrawOrderDidChange
		}
		sm.drawOrders[d] = int32(d)
		reversed := int32(len(sm.positions) - 1 - d)
		if reversed != sm.renderOrders[d] {
			sm.dynFlags[d] |= core.RenderOrderDidChange
		}
		sm.renderOrders[d] = reversed

		opacity := float32(1)
		if len(sm.partOpacities) > 0 {
			opacity = sm.partOpacities[min(d, len(sm.partOpacities)-1)]
		}
		if opacity != sm.drawOpacities[d] {
			sm.dynFlags[d] |= core.OpacityDidChange
		}
		sm.drawOpacities[d] = opacity
	}
}

func (e *stubEngine) model(p unsafe.Pointer) *stubModel {
	sm, ok := e.models[p]
	if !ok {
		panic("stub engine: unknown model pointer")
	}
	return sm
}

func (e *stubEngine) emitLog(message string) {
	if e.logFn != nil {
		e.logFn(message)
	}
}

func (e *stubEngine) lib() *core.Lib {
	return &core.Lib{
		GetVersion:          func() uint32 { return stubCoreVersion },
		GetLatestMocVersion: func() uint32 { return e.spec.latestMocVersion },
		GetMocVersion: func(address unsafe.Pointer, size uint32) uint32 {
			if address == nil || size < stubMocHeaderLen {
				return 0
			}
			return uint32(unsafe.Slice((*byte)(address), size)[4])
		},
		ReviveMocInPlace: func(address unsafe.Pointer, size uint32) unsafe.Pointer {
			if address == nil || size < stubMocHeaderLen {
				return nil
			}
			if string(unsafe.Slice((*byte)(address), 4)) != "MOC3" {
				return nil
			}
			return address
		},
		GetSizeofModel: func(moc unsafe.Pointer) uint32 {
			if e.spec.sizingFails {
				return 0
			}
			return stubModelSize
		},
		InitializeModelInPlace: func(moc, address unsafe.Pointer, size uint32) unsafe.Pointer {
			if e.spec.initFails {
				return nil
			}
			sm := e.buildModel()
			if e.spec.tamper != nil {
				e.spec.tamper(sm)
			}
			e.models[address] = sm
			e.last = sm
			return address
		},
		UpdateModel: func(model unsafe.Pointer) {
			e.model(model).update()
		},
		ResetDrawableDynamicFlags: func(model unsafe.Pointer) {
			sm := e.model(model)
			for i := range sm.dynFlags {
				sm.dynFlags[i] &= core.IsVisible
			}
		},
		ReadCanvasInfo: func(model, sizeInPixels, originInPixels, pixelsPerUnit unsafe.Pointer) {
			*(*Vector2)(sizeInPixels) = e.spec.canvas.SizeInPixels
			*(*Vector2)(originInPixels) = e.spec.canvas.OriginInPixels
			*(*float32)(pixelsPerUnit) = e.spec.canvas.PixelsPerUnit
		},

		GetParameterCount:         func(m unsafe.Pointer) int32 { return e.model(m).paramCount },
		GetParameterIds:           func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramIDPtrs) },
		GetParameterMinimumValues: func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramMin) },
		GetParameterMaximumValues: func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramMax) },
		GetParameterDefaultValues: func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramDef) },
		GetParameterValues:        func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramValues) },
		GetParameterKeyCounts:     func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramKeyCount) },
		GetParameterKeyValues:     func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).paramKeyPtrs) },

		GetPartCount:             func(m unsafe.Pointer) int32 { return e.model(m).partCount },
		GetPartIds:               func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).partIDPtrs) },
		GetPartOpacities:         func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).partOpacities) },
		GetPartParentPartIndices: func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).partParents) },

		GetDrawableCount:           func(m unsafe.Pointer) int32 { return e.model(m).drawCount },
		GetDrawableIds:             func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).drawIDPtrs) },
		GetDrawableConstantFlags:   func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).constFlags) },
		GetDrawableDynamicFlags:    func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).dynFlags) },
		GetDrawableTextureIndices:  func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).texIndices) },
		GetDrawableDrawOrders:      func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).drawOrders) },
		GetDrawableRenderOrders:    func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).renderOrders) },
		GetDrawableOpacities:       func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).drawOpacities) },
		GetDrawableMaskCounts:      func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).maskCounts) },
		GetDrawableMasks:           func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).maskPtrs) },
		GetDrawableVertexCounts:    func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).vertexCounts) },
		GetDrawableVertexPositions: func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).posPtrs) },
		GetDrawableVertexUvs:       func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).uvPtrs) },
		GetDrawableIndexCounts:     func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).indexCounts) },
		GetDrawableIndices:         func(m unsafe.Pointer) unsafe.Pointer { return ptrOf(e.model(m).indexPtrs) },

		SetLogCallback: func(fn func(string)) { e.logFn = fn },
	}
}

// newStubCore wires a stub engine into a Core and hands back both.
func newStubCore(spec stubSpec) (*Core, *stubEngine) {
	e := newStubEngine(spec)
	return New(e.lib()), e
}

// newStubModel builds a model from spec through the full creation path.
func newStubModel(spec stubSpec) (*Model, *stubEngine, error) {
	c, e := newStubCore(spec)
	moc, err := c.NewMoc(e.mocBytes(core.MocVersion40))
	if err != nil {
		return nil, e, err
	}
	model, err := moc.NewModel()
	return model, e, err
}
