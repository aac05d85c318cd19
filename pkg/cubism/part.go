package cubism

import "fmt"

// PartParent encodes a part's parent: either the root marker or the index of
// another part. Values below the root marker are invalid and rejected at
// extraction.
type PartParent int32

// PartRoot marks a part without a parent.
const PartRoot PartParent = -1

// IsRoot reports whether the part has no parent.
func (p PartParent) IsRoot() bool {
	return p == PartRoot
}

// Index returns the parent part index, or false for a root part.
func (p PartParent) Index() (int, bool) {
	if p <= PartRoot {
		return 0, false
	}
	return int(p), true
}

func (p PartParent) String() string {
	if i, ok := p.Index(); ok {
		return fmt.Sprintf("part %d", i)
	}
	return "root"
}

// StaticPart is the immutable description of one part.
type StaticPart struct {
	Index  int
	ID     string
	Parent PartParent
}

// StaticParts is the keyed collection of static part records.
type StaticParts = Facet[StaticPart]

// StaticParts projects the model's immutable part data.
func (m *Model) StaticParts() StaticParts {
	p := &m.parts
	return newFacet(p.ids, p.index, func(i int) (StaticPart, error) {
		return StaticPart{
			Index:  i,
			ID:     p.ids[i],
			Parent: p.parents[i],
		}, nil
	})
}
