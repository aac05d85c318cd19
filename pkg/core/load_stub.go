//go:build !(darwin || freebsd || linux)

package core

// DefaultLibName returns the conventional shared-library file name for the
// current platform.
func DefaultLibName() string {
	return "Live2DCubismCore.dll"
}

// Load is unavailable on this platform. A Lib may still be populated by hand,
// which is how the tests run everywhere.
func Load(path string) (*Lib, error) {
	return nil, ErrUnsupportedPlatform
}
