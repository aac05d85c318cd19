package core

import (
	"sync"
	"unsafe"
)

// logBridge adapts the engine's single C log-function slot to swappable Go
// handlers. C-callable trampolines come from a small process-wide pool and
// are never released, so the bridge creates exactly one for its lifetime and
// only swaps the Go handler behind it.
type logBridge struct {
	create  func(fn func(message uintptr)) uintptr
	install func(fn uintptr)

	mu         sync.Mutex
	trampoline uintptr
	handler    func(string)
}

func newLogBridge(create func(func(uintptr)) uintptr, install func(uintptr)) *logBridge {
	return &logBridge{create: create, install: install}
}

// set registers fn as the engine's diagnostic sink; nil unregisters.
func (b *logBridge) set(fn func(message string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = fn
	if fn == nil {
		b.install(0)
		return
	}
	if b.trampoline == 0 {
		b.trampoline = b.create(b.relay)
	}
	b.install(b.trampoline)
}

// relay is the one C-visible entry point; it forwards to whichever handler is
// current at call time.
func (b *logBridge) relay(message uintptr) {
	b.mu.Lock()
	fn := b.handler
	b.mu.Unlock()
	if fn != nil {
		fn(goString(message))
	}
}

// goString copies a null-terminated C string into a Go string.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}
