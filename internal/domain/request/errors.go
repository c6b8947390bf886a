package request

import "errors"

var (
	ErrNotFound = errors.New("request not found")
	// ErrUnauthorized: the acting role does not own the attempted stage.
	ErrUnauthorized = errors.New("role not permitted to act on this stage")
	// ErrStaleStage: the stage is not the eligible one: already decided,
	// frozen by an earlier rejection, or lost a race to a concurrent decision.
	ErrStaleStage = errors.New("stage already resolved")
	// ErrValidation: missing comment/signature/note for the attempted action.
	ErrValidation = errors.New("decision failed validation")
)
