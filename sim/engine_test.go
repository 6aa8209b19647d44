package sim

import (
	"errors"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

func newMockEventAt(ctrl *gomock.Controller, t VTime) *MockEvent {
	evt := NewMockEvent(ctrl)
	evt.EXPECT().Time().Return(t).AnyTimes()
	evt.EXPECT().Name().Return("Test Event").AnyTimes()
	return evt
}

var _ = ginkgo.Describe("Engine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *Engine
	)

	ginkgo.BeforeEach(func() {
		mockCtrl = gomock.NewController(ginkgo.GinkgoT())
		engine = NewEngine("Test")
	})

	ginkgo.AfterEach(func() {
		mockCtrl.Finish()
	})

	ginkgo.It("should initialize to WAITING", func() {
		Expect(engine.IsState(StateWaiting)).To(BeTrue())
		Expect(engine.Message()).To(ContainSubstring("Initialized"))
		Expect(engine.CurrentTime()).To(Equal(VTime(0)))
	})

	ginkgo.It("should report the queue length in its string form", func() {
		for i := 0; i < 3; i++ {
			engine.Schedule(newMockEventAt(mockCtrl, VTime(i)))
		}

		Expect(engine.String()).To(ContainSubstring("3 events"))
	})

	ginkgo.It("should drop nil events without touching the queue", func() {
		engine.Schedule(nil)
		engine.ScheduleAt(nil, 4)

		Expect(engine.QueueLen()).To(Equal(0))
	})

	ginkgo.It("should dispatch events in ascending time order", func() {
		dispatched := []VTime{}
		for _, t := range []VTime{4, 1, 3, 2} {
			evt := newMockEventAt(mockCtrl, t)
			evt.EXPECT().Dispatch(gomock.Any()).
				DoAndReturn(func(Context) ([]Event, error) {
					dispatched = append(dispatched, engine.CurrentTime())
					return nil, nil
				})
			engine.Schedule(evt)
		}

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(dispatched).To(Equal([]VTime{1, 2, 3, 4}))
		Expect(engine.IsState(StateFinished)).To(BeTrue())
	})

	ginkgo.It("should finish when the queue is exhausted", func() {
		evt := newMockEventAt(mockCtrl, 0)
		evt.EXPECT().Dispatch(gomock.Any()).Return(nil, nil)
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateFinished)).To(BeTrue())
		Expect(engine.Message()).To(ContainSubstring("finished at 0"))
	})

	ginkgo.It("should cut off at the stop time and discard the popped event", func() {
		evt1 := newMockEventAt(mockCtrl, 1)
		evt1.EXPECT().Dispatch(gomock.Any()).Return(nil, nil)
		evt5 := newMockEventAt(mockCtrl, 5)
		evt5.EXPECT().Dispatch(gomock.Any()).Times(0)
		engine.Schedule(evt1)
		engine.Schedule(evt5)

		err := engine.RunUntil(3)

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateStopped)).To(BeTrue())
		Expect(engine.CurrentTime()).To(Equal(VTime(3)))
		Expect(engine.Message()).To(ContainSubstring("max time 3 exceeded"))
		Expect(engine.QueueLen()).To(Equal(0))
	})

	ginkgo.It("should stop when an event raises a StopEngineError", func() {
		evt := newMockEventAt(mockCtrl, 2)
		evt.EXPECT().Dispatch(gomock.Any()).
			DoAndReturn(func(Context) ([]Event, error) {
				return nil, NewStopEngineError(evt, "I've been a bad event")
			})
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateStopped)).To(BeTrue())
		Expect(engine.Message()).To(ContainSubstring("Test Event"))
		Expect(engine.Message()).To(ContainSubstring("I've been a bad event"))
	})

	ginkgo.It("should abort when an event raises an EventError", func() {
		evt := newMockEventAt(mockCtrl, 2)
		evt.EXPECT().Dispatch(gomock.Any()).
			DoAndReturn(func(Context) ([]Event, error) {
				return nil, NewEventError(evt, "This is a general error")
			})
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateAborted)).To(BeTrue())
		Expect(engine.Message()).To(ContainSubstring("This is a general error"))
	})

	ginkgo.It("should propagate unmodeled defects and stay RUNNING", func() {
		defect := errors.New("this is a poorly written event")
		evt := newMockEventAt(mockCtrl, 2)
		evt.EXPECT().Dispatch(gomock.Any()).Return(nil, defect)
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(MatchError(defect))
		Expect(engine.IsState(StateRunning)).To(BeTrue())
	})

	ginkgo.It("should schedule everything a dispatched event yields", func() {
		followOnTimes := []VTime{}

		top := newMockEventAt(mockCtrl, 2)
		followOns := []Event{}
		for _, t := range []VTime{2, 4, 6} {
			child := newMockEventAt(mockCtrl, t)
			child.EXPECT().Dispatch(gomock.Any()).
				DoAndReturn(func(Context) ([]Event, error) {
					followOnTimes = append(followOnTimes, engine.CurrentTime())
					return nil, nil
				})
			followOns = append(followOns, child)
		}
		top.EXPECT().Dispatch(gomock.Any()).Return(followOns, nil)
		engine.Schedule(top)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateFinished)).To(BeTrue())
		Expect(engine.CurrentTime()).To(Equal(VTime(6)))
		Expect(followOnTimes).To(Equal([]VTime{2, 4, 6}))
	})

	ginkgo.It("should skip nil entries in a dispatch result", func() {
		child := newMockEventAt(mockCtrl, 3)
		child.EXPECT().Dispatch(gomock.Any()).Return(nil, nil)

		top := newMockEventAt(mockCtrl, 1)
		top.EXPECT().Dispatch(gomock.Any()).
			Return([]Event{nil, child, nil}, nil)
		engine.Schedule(top)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateFinished)).To(BeTrue())
		Expect(engine.CurrentTime()).To(Equal(VTime(3)))
	})

	ginkgo.It("should schedule events yielded before a failure", func() {
		child := newMockEventAt(mockCtrl, 9)

		top := newMockEventAt(mockCtrl, 1)
		top.EXPECT().Dispatch(gomock.Any()).
			DoAndReturn(func(Context) ([]Event, error) {
				return []Event{child}, NewEventError(top, "failed midway")
			})
		engine.Schedule(top)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(engine.IsState(StateAborted)).To(BeTrue())
		Expect(engine.QueueLen()).To(Equal(1))
	})

	ginkgo.It("should honor an override timestamp", func() {
		var seen VTime

		evt := newMockEventAt(mockCtrl, 10)
		evt.EXPECT().Dispatch(gomock.Any()).
			DoAndReturn(func(Context) ([]Event, error) {
				seen = engine.CurrentTime()
				return nil, nil
			})
		engine.ScheduleAt(evt, 1)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(seen).To(Equal(VTime(1)))
		Expect(engine.IsState(StateFinished)).To(BeTrue())
	})

	ginkgo.It("should reject re-entrant runs", func() {
		var reentrantErr error

		evt := newMockEventAt(mockCtrl, 1)
		evt.EXPECT().Dispatch(gomock.Any()).
			DoAndReturn(func(Context) ([]Event, error) {
				reentrantErr = engine.Run()
				return nil, nil
			})
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(reentrantErr).To(HaveOccurred())
		Expect(reentrantErr).To(BeAssignableToTypeOf(EngineError{}))
	})

	ginkgo.It("should pass the context bag to dispatch", func() {
		ctx := Context{"marker": 42}
		engine.SetContext(ctx)

		evt := newMockEventAt(mockCtrl, 1)
		evt.EXPECT().Dispatch(gomock.Any()).
			DoAndReturn(func(got Context) ([]Event, error) {
				Expect(got).To(HaveKeyWithValue("marker", 42))
				return nil, nil
			})
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(BeNil())
	})

	ginkgo.It("should invoke hooks around each dispatch", func() {
		hook := &positionRecordingHook{}
		engine.AcceptHook(hook)

		evt := newMockEventAt(mockCtrl, 1)
		evt.EXPECT().Dispatch(gomock.Any()).Return(nil, nil)
		engine.Schedule(evt)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(hook.positions).To(Equal(
			[]*HookPos{HookPosBeforeEvent, HookPosAfterEvent}))
	})
})

type positionRecordingHook struct {
	positions []*HookPos
}

func (h *positionRecordingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos)
}

var _ = ginkgo.Describe("Errors", func() {
	ginkgo.It("should match a StopEngineError as an EventError", func() {
		var err error = NewStopEngineError(nil, "halt")

		var stopErr StopEngineError
		var evtErr EventError
		Expect(errors.As(err, &stopErr)).To(BeTrue())
		Expect(errors.As(err, &evtErr)).To(BeTrue())
	})

	ginkgo.It("should not match a plain EventError as a StopEngineError", func() {
		var err error = NewEventError(nil, "broken")

		var stopErr StopEngineError
		Expect(errors.As(err, &stopErr)).To(BeFalse())
	})
})
