package sim

import "fmt"

// An EventError is returned by an event's dispatch logic to signal a
// modeled failure: the run cannot meaningfully continue, but the failure is
// part of the simulated world rather than a programming defect. The engine
// reacts by transitioning to StateAborted.
type EventError struct {
	Event Event
	Msg   string
}

// NewEventError creates an EventError raised by the given event.
func NewEventError(evt Event, msg string) EventError {
	return EventError{Event: evt, Msg: msg}
}

func (e EventError) Error() string {
	return e.Msg
}

// A StopEngineError is returned by an event to signal that the simulation
// should end now, by design rather than by failure. The engine reacts by
// transitioning to StateStopped.
//
// StopEngineError specializes EventError. Code that matches both kinds must
// match StopEngineError first.
type StopEngineError struct {
	EventError
}

// NewStopEngineError creates a StopEngineError raised by the given event.
func NewStopEngineError(evt Event, msg string) StopEngineError {
	return StopEngineError{EventError{Event: evt, Msg: msg}}
}

// Unwrap exposes the underlying EventError so that errors.As sees a
// StopEngineError as an EventError as well.
func (e StopEngineError) Unwrap() error {
	return e.EventError
}

// An EngineError reports a misuse of the engine itself, such as calling Run
// while a run is already in progress.
type EngineError struct {
	Now VTime
	Msg string
}

func (e EngineError) Error() string {
	return fmt.Sprintf("%d: %s", e.Now, e.Msg)
}
