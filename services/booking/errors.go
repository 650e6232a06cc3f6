package booking

import "errors"

var (
	ErrInstructorNotFound     = errors.New("instructor not found")
	ErrLearnerNotFound        = errors.New("learner not found")
	ErrLessonNotFound         = errors.New("lesson not found")
	ErrSlotUnavailable        = errors.New("requested slot is not available")
	ErrNotLessonOwner         = errors.New("lesson does not belong to this account")
	ErrLessonNotCancellable   = errors.New("lesson is in a terminal status")
	ErrAlreadyCancelled       = errors.New("lesson is already cancelled")
	ErrCancellationNotAllowed = errors.New("learner cancellation is not allowed; contact the instructor directly")
	ErrLessonNotScheduled     = errors.New("lesson is not in the scheduled status")
)
