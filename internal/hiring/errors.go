package hiring

import "errors"

// Failure kinds surfaced by the engine. Callers match with errors.Is; any
// other error is an internal store or transport failure. A hire attempt that
// lost a concurrency race and one against an already-assigned gig both
// surface as ErrConflict: the remedial action is the same either way.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("requester does not own the gig")
	ErrConflict  = errors.New("gig is not open")
)
