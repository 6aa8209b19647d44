package sim

import "log"

// A LogHook is a hook that is responsible for recording information from
// the simulation.
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks.
type LogHookBase struct {
	*log.Logger
}

// EventLogger is a hook that prints the dispatched events.
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns an EventLogger that writes into the given logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger
	return h
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	h.Logger.Printf("%d, %s", evt.Time(), evt.Name())
}
