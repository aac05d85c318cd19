package cubism

import "errors"

// Wrapper errors. Extraction and revalidation failures wrap these sentinels
// together with the offending domain/field, so callers can match with
// errors.Is and still see what the engine handed back.
var (
	// ErrUnsupportedMocVersion reports a moc whose format version is newer
	// than the linked engine supports, or not a known version at all.
	ErrUnsupportedMocVersion = errors.New("unsupported moc version")
	// ErrMocTooLarge reports moc data above the engine's 32-bit size bound.
	ErrMocTooLarge = errors.New("moc data too large")
	// ErrInvalidMocData reports moc bytes the engine refused to revive.
	ErrInvalidMocData = errors.New("invalid moc data")
	// ErrModelInitFailed reports an engine-side model sizing or
	// initialization failure.
	ErrModelInitFailed = errors.New("failed to initialize model")
	// ErrInvalidCount reports a negative or malformed element count.
	ErrInvalidCount = errors.New("invalid count")
	// ErrInvalidData reports a null, undecodable, or invariant-violating
	// engine array.
	ErrInvalidData = errors.New("invalid model data")
	// ErrInvalidFlags reports drawable flag bytes with undefined bits set.
	ErrInvalidFlags = errors.New("invalid flags")
	// ErrIndexOutOfRange reports an out-of-range index on a checked accessor.
	ErrIndexOutOfRange = errors.New("index out of range")
)
