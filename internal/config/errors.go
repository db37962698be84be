package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidWorkStart     = errors.New("PLANNER_WORK_START must be HH:MM or an hour")
	ErrInvalidWorkEnd       = errors.New("PLANNER_WORK_END must be HH:MM or an hour")
	ErrInvalidWorkingHours  = errors.New("working hours must end after they start")
	ErrInvalidTimezone      = errors.New("PLANNER_TIMEZONE must be an IANA time zone name")
	ErrPlannerConfigMissing = errors.New("planner configuration is required")
)
