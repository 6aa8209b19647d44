package datarecording

import "github.com/tfinlab/tfin/sim"

// DispatchRecord is one row of the dispatch log: one dispatched event.
type DispatchRecord struct {
	Time  int64
	Event string
}

// DispatchTableName is the table the DispatchLogger writes into.
const DispatchTableName = "dispatches"

// A DispatchLogger is an engine hook that records every dispatched event
// into the recorder, producing a replayable history of the run.
type DispatchLogger struct {
	recorder DataRecorder
}

// NewDispatchLogger creates a DispatchLogger and prepares its table.
func NewDispatchLogger(recorder DataRecorder) *DispatchLogger {
	recorder.CreateTable(DispatchTableName, DispatchRecord{})
	return &DispatchLogger{recorder: recorder}
}

// Func records the event about to be dispatched.
func (l *DispatchLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(sim.Event)
	if !ok {
		return
	}

	l.recorder.InsertData(DispatchTableName, DispatchRecord{
		Time:  int64(evt.Time()),
		Event: evt.Name(),
	})
}
