package apperrors

import "errors"

var (
	ErrDraftNotFound        = errors.New("draft not found")
	ErrEventIndexOutOfRange = errors.New("event index out of range")
	ErrInvalidEventField    = errors.New("invalid event field")
	ErrSubmissionInFlight   = errors.New("submission already in flight")
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrNoticeNotFound       = errors.New("notice not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternalServerError  = errors.New("internal server error")

	// ErrStaleRevision 客戶端持有的 index 來自舊的 revision，期間集合已被修改
	ErrStaleRevision = errors.New("stale draft revision")
)
