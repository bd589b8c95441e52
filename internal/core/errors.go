package core

import "errors"

// Input errors. Every one of them aborts a projection; none is retried.
var (
	ErrUnsupportedSchedule = errors.New("unsupported schedule type")
	ErrUnsupportedItemType = errors.New("unsupported transaction type")
	ErrUnsupportedDayToken = errors.New("unsupported days_in_month token")
	ErrMalformedDate       = errors.New("malformed date")
	ErrMissingStart        = errors.New("missing schedule start")
	ErrInvalidInterval     = errors.New("invalid interval")
	ErrInvalidCron         = errors.New("invalid cron expression")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDays         = errors.New("days must be positive")
	ErrInvalidEnabled      = errors.New("invalid enabled flag")
	ErrMissingColumn       = errors.New("missing column")
)
