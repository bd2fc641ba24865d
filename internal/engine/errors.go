package engine

import "errors"

// The four error categories from the client-facing error taxonomy: every
// operation's error wraps exactly one of these, so callers can
// errors.Is against the category while the message stays specific.
var (
	// ErrPrecondition covers out-of-range indices, non-positive sample
	// rates or frame counts, invalid clip ids, invalid sample bounds, and
	// negative sample-count queries.
	ErrPrecondition = errors.New("engine: precondition failed")

	// ErrState covers operations attempted in the wrong transport mode,
	// an unset sample rate, changing the sample rate while clips exist,
	// and double initialize/shutdown.
	ErrState = errors.New("engine: invalid state")

	// ErrIO covers file open/read/write failures and WAV format or
	// sample-rate mismatches.
	ErrIO = errors.New("engine: io failure")

	// ErrHost covers audio host library failures: context init, device
	// query, format support check, stream open/start/stop/close.
	ErrHost = errors.New("engine: host audio failure")
)
