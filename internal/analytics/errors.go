package analytics

import "errors"

var ErrInvalidFilter = errors.New("invalid filter")
