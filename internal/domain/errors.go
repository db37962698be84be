package domain

import "errors"

var (
	ErrInvalidTask       = errors.New("invalid task")
	ErrInvalidEvent      = errors.New("invalid timeline event")
	ErrInvalidClockTime  = errors.New("invalid clock time")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidSettings   = errors.New("invalid day settings")
	ErrSettingsNotFound  = errors.New("day settings not found")
	ErrSnapshotNotFound  = errors.New("plan snapshot not found")
	ErrUnknownActionType = errors.New("unknown recommendation action")
)
