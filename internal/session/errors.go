package session

import "errors"

// ErrSessionDone is returned by Grade once the queue is exhausted.
var ErrSessionDone = errors.New("session: no cards left to review")
