// Package cubism is a safe Go wrapper for the Live2D Cubism Core native
// library. It owns the lifecycle of compiled assets (mocs) and live model
// instances, validates every array the engine hands back before exposing it,
// and presents the model's parameters, parts, and drawables as bounds-checked,
// identifier-indexable collections.
//
// The engine itself stays opaque: pkg/core loads it and exposes its flat
// function boundary, and everything above that boundary lives here.
package cubism

import "github.com/Faultbox/live2d/pkg/core"

// Core is a handle to one loaded Cubism Core engine. All mocs and models are
// created through it and remain bound to its engine for their lifetime.
type Core struct {
	lib *core.Lib
}

// Open loads the native Cubism Core shared library at path.
func Open(path string) (*Core, error) {
	lib, err := core.Load(path)
	if err != nil {
		return nil, err
	}
	return New(lib), nil
}

// New wraps an already-resolved engine function table. Panics if lib is nil.
func New(lib *core.Lib) *Core {
	if lib == nil {
		panic("cubism: nil core.Lib")
	}
	return &Core{lib: lib}
}

// Lib returns the underlying engine function table.
func (c *Core) Lib() *core.Lib {
	return c.lib
}

// Version queries the engine's runtime version.
func (c *Core) Version() Version {
	return versionFromRaw(c.lib.GetVersion())
}

// LatestMocVersion queries the newest moc3 format revision the engine
// supports. Mocs newer than this are rejected at creation.
func (c *Core) LatestMocVersion() MocVersion {
	return MocVersion(c.lib.GetLatestMocVersion())
}

// SetLogHandler registers fn as the engine's diagnostic sink. The engine
// keeps at most one sink; registering replaces the previous handler, and nil
// unregisters it. logger.CoreSink provides a zap-backed handler.
func (c *Core) SetLogHandler(fn func(message string)) {
	c.lib.SetLogCallback(fn)
}
