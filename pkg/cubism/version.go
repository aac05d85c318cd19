package cubism

import (
	"fmt"

	"github.com/Faultbox/live2d/pkg/core"
)

// Version is the engine's runtime version, decomposed from the packed
// major:minor:patch word the engine reports.
type Version struct {
	Raw   uint32
	Major uint8
	Minor uint8
	Patch uint16
}

func versionFromRaw(raw uint32) Version {
	return Version{
		Raw:   raw,
		Major: uint8(raw >> 24),
		Minor: uint8(raw >> 16),
		Patch: uint16(raw),
	}
}

// String formats the version as "major.minor.patch (raw)".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d (%d)", v.Major, v.Minor, v.Patch, v.Raw)
}

// MocVersion is a moc3 file format revision. The values are the raw codes the
// engine reports, so known revisions order naturally: 30 < 33 < 40. Anything
// outside the known set is unsupported, which keeps unknown future formats
// from slipping through.
type MocVersion uint32

// Known moc3 format revisions.
const (
	MocVersionUnknown = MocVersion(core.MocVersionUnknown)
	MocVersion30      = MocVersion(core.MocVersion30) // moc3 3.0.00 - 3.2.07
	MocVersion33      = MocVersion(core.MocVersion33) // moc3 3.3.00 - 3.3.03
	MocVersion40      = MocVersion(core.MocVersion40) // moc3 4.0.00
)

// Known reports whether v is a revision this wrapper recognizes.
func (v MocVersion) Known() bool {
	return v >= MocVersion30 && v <= MocVersion40
}

// SupportedBy reports whether a moc of version v may be revived by an engine
// whose latest supported revision is latest.
func (v MocVersion) SupportedBy(latest MocVersion) bool {
	return v.Known() && v <= latest
}

// String names the revision, or "unknown (code)" for unrecognized codes.
func (v MocVersion) String() string {
	switch v {
	case MocVersion30:
		return "3.0"
	case MocVersion33:
		return "3.3"
	case MocVersion40:
		return "4.0"
	default:
		return fmt.Sprintf("unknown (%d)", uint32(v))
	}
}
