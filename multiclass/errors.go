package multiclass

import "errors"

// Sentinel errors for classifier operations. State buffer mismatches and
// probe index errors surface as machine.ErrSizeMismatch and
// machine.ErrIndexRange from the engine.
var (
	// ErrInvalidConfig is returned when an ensemble cannot be built from the
	// given configuration or engines.
	ErrInvalidConfig = errors.New("invalid classifier configuration")

	// ErrClassRange is returned when a class id or label is outside
	// [0, classes).
	ErrClassRange = errors.New("class id out of range")

	// ErrInputSize is returned when an input slice is shorter than the
	// example count requires at the configured stride.
	ErrInputSize = errors.New("input shorter than examples require")
)
