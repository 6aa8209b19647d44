package sim

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// EngineState enumerates the allowed engine run-states.
type EngineState int

const (
	// StateWaiting is the initial state of a fresh engine.
	StateWaiting EngineState = iota

	// StateStopped means the simulation was stopped early for a reason.
	StateStopped

	// StateRunning means the simulation is dispatching events normally.
	StateRunning

	// StatePaused is reserved for externally-initiated suspension. The run
	// loop itself never enters it.
	StatePaused

	// StateAborted means the simulation was aborted due to a modeled error.
	StateAborted

	// StateFinished means the simulation exhausted its queue normally.
	StateFinished
)

func (s EngineState) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateStopped:
		return "STOPPED"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateAborted:
		return "ABORTED"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// EngineStatus pairs the engine run-state with the message explaining how
// the engine got there.
type EngineStatus struct {
	State   EngineState
	Message string
}

// An Engine owns the event queue and the logical clock and keeps the
// discrete event simulation running.
//
// All scheduling goes through the engine. Events only return new events to
// be scheduled by the engine that dispatched them.
type Engine struct {
	HookableBase

	name  string
	queue EventQueue
	ctx   Context

	nowLock sync.RWMutex
	now     VTime

	statusLock sync.RWMutex
	status     EngineStatus

	runLock sync.Mutex
}

// NewEngine creates an engine with an empty queue, the clock at 0, and
// state WAITING.
func NewEngine(name string) *Engine {
	e := &Engine{
		name:  name,
		queue: NewEventQueue(),
	}
	e.status = EngineStatus{State: StateWaiting, Message: "Initialized"}
	return e
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine(%s) - %d events - Status: '%s'",
		e.name, e.queue.Len(), e.State())
}

// SetContext installs the context bag that is handed to every dispatched
// event.
func (e *Engine) SetContext(ctx Context) {
	e.ctx = ctx
}

// Status returns the current engine state together with its message.
func (e *Engine) Status() EngineStatus {
	e.statusLock.RLock()
	s := e.status
	e.statusLock.RUnlock()
	return s
}

// State returns the current engine run-state.
func (e *Engine) State() EngineState {
	return e.Status().State
}

// Message returns the latest engine status message.
func (e *Engine) Message() string {
	return e.Status().Message
}

// IsState returns whether the current engine state equals the provided one.
func (e *Engine) IsState(state EngineState) bool {
	return e.State() == state
}

// CurrentTime returns the current logical time. During a run this is the
// time of the event being dispatched, or the stop time if the run was cut
// off early.
func (e *Engine) CurrentTime() VTime {
	e.nowLock.RLock()
	t := e.now
	e.nowLock.RUnlock()
	return t
}

// QueueLen returns the number of pending events.
func (e *Engine) QueueLen() int {
	return e.queue.Len()
}

func (e *Engine) setStatus(state EngineState, message string) {
	e.statusLock.Lock()
	e.status = EngineStatus{State: state, Message: message}
	e.statusLock.Unlock()
}

func (e *Engine) writeNow(t VTime) {
	e.nowLock.Lock()
	e.now = t
	e.nowLock.Unlock()
}

func (e *Engine) stop(msg string) {
	e.setStatus(StateStopped, msg)
}

func (e *Engine) abort(msg string) {
	e.setStatus(StateAborted, msg)
}

func (e *Engine) finish(msg string) {
	e.setStatus(StateFinished, msg)
}

// Schedule adds an event to the queue at the event's own time. A nil event
// is silently dropped and the queue stays unchanged.
//
// Events timestamped before the current time are accepted and enqueued
// without adjustment.
func (e *Engine) Schedule(evt Event) {
	if evt == nil {
		return
	}

	e.queue.Push(evt)
}

// ScheduleAt adds an event to the queue at an override time instead of the
// event's own time.
func (e *Engine) ScheduleAt(evt Event, t VTime) {
	if evt == nil {
		return
	}

	e.queue.Push(retimedEvent{Event: evt, time: t})
}

// Run dispatches events in time order until the queue is exhausted or an
// event signals the run to end.
//
// An error returned by Run is an unmodeled defect that escaped an event's
// dispatch logic. In that case the engine state is left at RUNNING so the
// caller can tell the run ended abnormally and is not safely resumable.
// Modeled outcomes never produce an error; they are reported through the
// engine status instead.
func (e *Engine) Run() error {
	return e.run(0, false)
}

// RunUntil behaves like Run with a hard cutoff: the first popped event
// whose time exceeds stopAt freezes the clock at stopAt, sets the state to
// STOPPED, and is discarded without being dispatched or requeued.
func (e *Engine) RunUntil(stopAt VTime) error {
	return e.run(stopAt, true)
}

func (e *Engine) run(stopAt VTime, hasStop bool) error {
	if !e.runLock.TryLock() {
		return EngineError{
			Now: e.CurrentTime(),
			Msg: "engine is already running",
		}
	}
	defer e.runLock.Unlock()

	stopMsg := "Never"
	if hasStop {
		stopMsg = strconv.FormatInt(int64(stopAt), 10)
	}
	e.setStatus(StateRunning, "Stopping at "+stopMsg)

	for {
		if e.queue.Len() == 0 {
			e.finish(fmt.Sprintf("Simulation finished at %d", e.CurrentTime()))
			return nil
		}

		evt := e.queue.Pop()
		if hasStop && evt.Time() > stopAt {
			e.writeNow(stopAt)
			e.stop(fmt.Sprintf("Simulation max time %d exceeded", stopAt))
			return nil
		}
		e.writeNow(evt.Time())

		cont, err := e.consumeEvent(evt)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// consumeEvent dispatches one event, schedules everything it yields, and
// routes its error, if any. It reports whether the run loop should keep
// going.
func (e *Engine) consumeEvent(evt Event) (bool, error) {
	hookCtx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	children, err := evt.Dispatch(e.ctx)
	for _, child := range children {
		if child != nil {
			e.Schedule(child)
		}
	}

	var stopErr StopEngineError
	var evtErr EventError

	switch {
	case err == nil:
		hookCtx.Pos = HookPosAfterEvent
		e.InvokeHook(hookCtx)
		return true, nil
	case errors.As(err, &stopErr):
		e.stop(fmt.Sprintf("Simulation was stopped by event %s at t %d: %s",
			evt.Name(), e.CurrentTime(), err))
		return false, nil
	case errors.As(err, &evtErr):
		e.abort(fmt.Sprintf("Simulation was aborted by event %s at t %d: %s",
			evt.Name(), e.CurrentTime(), err))
		return false, nil
	default:
		// An unmodeled defect. Leave the status untouched and let the error
		// escape through Run.
		return false, err
	}
}
