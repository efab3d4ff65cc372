package mail

import "errors"

// ErrDeliveryFailed is returned when the relay rejects or fails to accept a
// message. Callers use it to decide whether to roll back state that only
// makes sense if the mail went out (e.g. a stored reset token).
var ErrDeliveryFailed = errors.New("mail delivery failed")
