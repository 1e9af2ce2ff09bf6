package services

import "errors"

// Engine error taxonomy. Controllers translate these into HTTP statuses;
// the engines themselves never format user-facing text.
var (
	ErrForbidden         = errors.New("actor lacks rights for this action")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrNotFound          = errors.New("entity not found")
	ErrBadRequest        = errors.New("bad request")

	ErrIncompleteProfile   = errors.New("provider profile incomplete")
	ErrOutsideWorkingHours = errors.New("slot outside provider working hours")
	ErrSlotTaken           = errors.New("time slot not available")

	ErrAlreadyReviewed = errors.New("booking already reviewed")
	ErrCommentTooShort = errors.New("review comment too short")
	ErrInvalidRating   = errors.New("rating outside 1..5")
)
