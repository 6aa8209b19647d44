package sim

// VTime is a point in simulated logical time. It is advanced only by event
// timestamps and has no relation to wall-clock time.
type VTime int64

// A Context is a free-form bag of references that event dispatch logic may
// need. The scheduler passes it through without interpreting it.
type Context map[string]any

// An Event is something going to happen in the future.
//
// Events never touch the engine queue directly. Dispatching an event
// performs its work and returns the follow-on events that the engine that
// invoked it should schedule.
type Event interface {
	// Time returns the time that the event should happen.
	Time() VTime

	// Name returns the display name of the event. The name never
	// participates in ordering.
	Name() string

	// Dispatch performs the work of the event and returns zero or more
	// newly-created events to schedule. Nil entries in the returned slice
	// are skipped by the engine. Events returned together with a non-nil
	// error were created before the failure and are still scheduled.
	Dispatch(ctx Context) ([]Event, error)
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	ID   string
	Data map[string]any

	time VTime
	name string
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTime, name string) *EventBase {
	e := new(EventBase)
	e.ID = GetIDGenerator().Generate()
	e.time = t
	e.name = name
	return e
}

// SetTime sets when the event will happen.
func (e *EventBase) SetTime(t VTime) {
	e.time = t
}

// Time returns the time that the event is going to happen.
func (e *EventBase) Time() VTime {
	return e.time
}

// Name returns the display name of the event.
func (e *EventBase) Name() string {
	return e.name
}

// Dispatch of the base event does nothing and yields no follow-on events.
// Concrete events embed EventBase and override this method.
func (e *EventBase) Dispatch(_ Context) ([]Event, error) {
	return nil, nil
}

// retimedEvent wraps an event scheduled with an override timestamp. The
// wrapped event keeps its own time; only the queue ordering changes.
type retimedEvent struct {
	Event
	time VTime
}

func (e retimedEvent) Time() VTime {
	return e.time
}
