package task

import "errors"

// ErrCapacityExceeded is returned when an add or move would push the
// signal bucket past its open-task limit.
var ErrCapacityExceeded = errors.New("signal capacity exceeded")
