package session

import "errors"

// ErrAcquireSuperseded is returned when the session was cleared or
// re-acquired while a derivation was still running. The derived key is
// destroyed.
var ErrAcquireSuperseded = errors.New("key acquisition superseded")
