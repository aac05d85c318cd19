//go:build darwin || freebsd || linux

package core

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

// DefaultLibName returns the conventional shared-library file name for the
// current platform.
func DefaultLibName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libLive2DCubismCore.dylib"
	default:
		return "libLive2DCubismCore.so"
	}
}

// Load opens the Cubism Core shared library at path and resolves every entry
// point into a Lib. A missing symbol fails the whole load; the engine contract
// is all-or-nothing.
func Load(path string) (*Lib, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("loading cubism core from %s: %w", path, err)
	}

	lib := &Lib{}
	symbols := []struct {
		fptr any
		name string
	}{
		{&lib.GetVersion, "csmGetVersion"},
		{&lib.GetLatestMocVersion, "csmGetLatestMocVersion"},
		{&lib.GetMocVersion, "csmGetMocVersion"},
		{&lib.ReviveMocInPlace, "csmReviveMocInPlace"},
		{&lib.GetSizeofModel, "csmGetSizeofModel"},
		{&lib.InitializeModelInPlace, "csmInitializeModelInPlace"},
		{&lib.UpdateModel, "csmUpdateModel"},
		{&lib.ResetDrawableDynamicFlags, "csmResetDrawableDynamicFlags"},
		{&lib.ReadCanvasInfo, "csmReadCanvasInfo"},
		{&lib.GetParameterCount, "csmGetParameterCount"},
		{&lib.GetParameterIds, "csmGetParameterIds"},
		{&lib.GetParameterMinimumValues, "csmGetParameterMinimumValues"},
		{&lib.GetParameterMaximumValues, "csmGetParameterMaximumValues"},
		{&lib.GetParameterDefaultValues, "csmGetParameterDefaultValues"},
		{&lib.GetParameterValues, "csmGetParameterValues"},
		{&lib.GetParameterKeyCounts, "csmGetParameterKeyCounts"},
		{&lib.GetParameterKeyValues, "csmGetParameterKeyValues"},
		{&lib.GetPartCount, "csmGetPartCount"},
		{&lib.GetPartIds, "csmGetPartIds"},
		{&lib.GetPartOpacities, "csmGetPartOpacities"},
		{&lib.GetPartParentPartIndices, "csmGetPartParentPartIndices"},
		{&lib.GetDrawableCount, "csmGetDrawableCount"},
		{&lib.GetDrawableIds, "csmGetDrawableIds"},
		{&lib.GetDrawableConstantFlags, "csmGetDrawableConstantFlags"},
		{&lib.GetDrawableDynamicFlags, "csmGetDrawableDynamicFlags"},
		{&lib.GetDrawableTextureIndices, "csmGetDrawableTextureIndices"},
		{&lib.GetDrawableDrawOrders, "csmGetDrawableDrawOrders"},
		{&lib.GetDrawableRenderOrders, "csmGetDrawableRenderOrders"},
		{&lib.GetDrawableOpacities, "csmGetDrawableOpacities"},
		{&lib.GetDrawableMaskCounts, "csmGetDrawableMaskCounts"},
		{&lib.GetDrawableMasks, "csmGetDrawableMasks"},
		{&lib.GetDrawableVertexCounts, "csmGetDrawableVertexCounts"},
		{&lib.GetDrawableVertexPositions, "csmGetDrawableVertexPositions"},
		{&lib.GetDrawableVertexUvs, "csmGetDrawableVertexUvs"},
		{&lib.GetDrawableIndexCounts, "csmGetDrawableIndexCounts"},
		{&lib.GetDrawableIndices, "csmGetDrawableIndices"},
	}
	for _, s := range symbols {
		addr, err := purego.Dlsym(handle, s.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSymbol, s.name)
		}
		purego.RegisterFunc(s.fptr, addr)
	}

	var setLogFunction func(fn uintptr)
	addr, err := purego.Dlsym(handle, "csmSetLogFunction")
	if err != nil {
		return nil, fmt.Errorf("%w: csmSetLogFunction", ErrMissingSymbol)
	}
	purego.RegisterFunc(&setLogFunction, addr)

	bridge := newLogBridge(
		func(fn func(uintptr)) uintptr { return purego.NewCallback(fn) },
		setLogFunction,
	)
	lib.SetLogCallback = bridge.set

	return lib, nil
}
