package repository

import "errors"

var (
	ErrInvalidSettingsData = errors.New("invalid settings data")
	ErrInvalidSnapshotData = errors.New("invalid snapshot data")
)
