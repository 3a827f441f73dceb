package player

// An Event is a notification from the decode goroutine to whoever is
// driving the UI. Delivery is best-effort: the producer never blocks on a
// slow listener.
type Event interface {
	isEvent()
}

// ErrorEvent reports a recoverable in-stream problem (a failed seek, a bad
// decode unit). Playback continues after one of these.
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
