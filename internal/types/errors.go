package types

import "errors"

// Error taxonomy shared across services. Handlers map these onto HTTP
// statuses; controllers use them to pick the offline fallback path.
var (
	// ErrOffline means the network or a remote collaborator is unreachable.
	// Read paths resolve it by substituting local data; it is never surfaced
	// as a blocking failure.
	ErrOffline = errors.New("remote service unreachable")

	// ErrAuthRequired means the operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation means malformed user input, caught before any network call.
	ErrValidation = errors.New("invalid input")

	// ErrRemoteWrite means the store rejected a write. Local optimistic state
	// is retained; the failure is only reported.
	ErrRemoteWrite = errors.New("remote write failed")

	// ErrTimeout means an operation exceeded its wall-clock budget. A late
	// completion is ignored.
	ErrTimeout = errors.New("operation timed out")

	ErrNotFound = errors.New("not found")
)
