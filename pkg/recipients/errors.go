package recipients

import "errors"

// ErrReadFailed is returned when the recipient source cannot be read.
var ErrReadFailed = errors.New("recipients: failed to read recipient list")
