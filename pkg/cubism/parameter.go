package cubism

import "slices"

// StaticParameter is the immutable description of one parameter: its
// identifier, value range, default, and keyframe values.
type StaticParameter struct {
	Index        int
	ID           string
	MinValue     float32
	MaxValue     float32
	DefaultValue float32
	KeyValues    []float32
}

// StaticParameters is the keyed collection of static parameter records.
type StaticParameters = Facet[StaticParameter]

// StaticParameters projects the model's immutable parameter data.
func (m *Model) StaticParameters() StaticParameters {
	p := &m.params
	return newFacet(p.ids, p.index, func(i int) (StaticParameter, error) {
		return StaticParameter{
			Index:        i,
			ID:           p.ids[i],
			MinValue:     p.min[i],
			MaxValue:     p.max[i],
			DefaultValue: p.def[i],
			KeyValues:    slices.Clone(p.keys[i]),
		}, nil
	})
}
