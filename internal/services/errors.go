package services

import "errors"

// ErrInvalidPeriod is returned for a month outside 1..12.
var ErrInvalidPeriod = errors.New("invalid period")
