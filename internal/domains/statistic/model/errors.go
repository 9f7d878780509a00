package model

import "errors"

var (
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidMonth  = errors.New("month must be formatted as YYYY-MM")
	ErrInvalidSortBy = errors.New("sort_by must be qty or amount")
)
