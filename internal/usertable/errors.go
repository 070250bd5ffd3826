package usertable

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrLoading          = errors.New("users are still loading")
	ErrLoadTimeout      = errors.New("load timed out")
	ErrClosed           = errors.New("table is closed")
)
