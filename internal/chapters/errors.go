package chapters

import "errors"

var (
	// ErrEmptyInput indicates a timeline was requested for zero source
	// files. Binding cannot proceed with zero chapters.
	ErrEmptyInput = errors.New("no source audio files")

	// ErrInvalidDuration indicates a probed duration was missing, negative,
	// or otherwise unusable. Timeline monotonicity depends on valid
	// durations, so the run aborts instead of coercing.
	ErrInvalidDuration = errors.New("invalid audio duration")
)
