// Package events implements a typed topic-to-handler-list publish/subscribe
// bus: synchronous, single-threaded, with handler-fault isolation.
package events

import (
	"github.com/sirupsen/logrus"

	"tacticalcore/enginelog"
)

// Topic names the event channels external observers subscribe to.
type Topic string

const (
	UnitMoved      Topic = "unit_moved"
	ActionQueued   Topic = "action_queued"
	ActionExecuted Topic = "action_executed"
	ActionFailed   Topic = "action_failed"
	ActionSkipped  Topic = "action_skipped"
	TurnStarted    Topic = "turn_started"
	TurnEnded      Topic = "turn_ended"
	BattleEnded    Topic = "battle_ended"
	UnitDied       Topic = "unit_died"
)

// Event is the payload handed to every handler on a topic.
type Event struct {
	Topic Topic
	Data  interface{}
}

// Handler receives a published event. A handler must never panic across the
// bus boundary; Bus recovers and logs on its behalf.
type Handler func(Event)

// Bus is a synchronous, in-thread pub/sub dispatcher. New handlers
// registered from within a dispatch are queued and only take effect for the
// next publish, never invoked reentrantly for the in-flight one.
type Bus struct {
	handlers map[Topic][]Handler
	pending  map[Topic][]Handler
	// dispatchDepth counts Publish calls currently on the stack, including
	// ones entered reentrantly from within a handler (e.g. a handler for one
	// topic publishing to another). Subscribe queues into pending whenever
	// depth > 0; pending only drains into handlers once the outermost
	// Publish returns, so a handler fired during a nested Publish never
	// observes a subscription registered earlier in the same outer dispatch.
	dispatchDepth int
	log           *logrus.Logger

	history     []Event
	historyCap  int
	historyNext int
}

func New(log *logrus.Logger) *Bus {
	if log == nil {
		log = enginelog.Default()
	}
	return &Bus{
		handlers: map[Topic][]Handler{},
		pending:  map[Topic][]Handler{},
		log:      log,
	}
}

// Subscribe registers h for topic. If called during any in-flight Publish
// (whatever its topic), h is queued and takes effect once the outermost
// Publish returns.
func (b *Bus) Subscribe(topic Topic, h Handler) {
	if b.dispatchDepth > 0 {
		b.pending[topic] = append(b.pending[topic], h)
		return
	}
	b.handlers[topic] = append(b.handlers[topic], h)
}

// EnableHistory turns on a fixed-capacity ring buffer of recently published
// events, for post-battle inspection or debugging; 0 disables it (the
// default). Calling it again resizes and clears the buffer.
func (b *Bus) EnableHistory(capacity int) {
	if capacity <= 0 {
		b.history = nil
		b.historyCap = 0
		b.historyNext = 0
		return
	}
	b.history = make([]Event, 0, capacity)
	b.historyCap = capacity
	b.historyNext = 0
}

// RecentEvents returns the events currently held in the history ring buffer,
// oldest first. Empty if EnableHistory was never called.
func (b *Bus) RecentEvents() []Event {
	if b.historyCap == 0 {
		return nil
	}
	if len(b.history) < b.historyCap {
		out := make([]Event, len(b.history))
		copy(out, b.history)
		return out
	}
	out := make([]Event, b.historyCap)
	copy(out, b.history[b.historyNext:])
	copy(out[b.historyCap-b.historyNext:], b.history[:b.historyNext])
	return out
}

func (b *Bus) recordHistory(ev Event) {
	if b.historyCap == 0 {
		return
	}
	if len(b.history) < b.historyCap {
		b.history = append(b.history, ev)
		return
	}
	b.history[b.historyNext] = ev
	b.historyNext = (b.historyNext + 1) % b.historyCap
}

// Publish dispatches ev to every handler currently registered on ev.Topic, in
// registration order. A handler's panic is recovered, logged, and does not
// prevent the remaining handlers from running. A handler that itself calls
// Publish (possibly for a different topic) nests safely: subscriptions
// registered anywhere during that nested dispatch stay pending until the
// outermost Publish call returns.
func (b *Bus) Publish(ev Event) {
	b.recordHistory(ev)
	b.dispatchDepth++
	for _, h := range b.handlers[ev.Topic] {
		b.invoke(h, ev)
	}
	b.dispatchDepth--

	if b.dispatchDepth > 0 {
		return
	}
	for topic, queued := range b.pending {
		b.handlers[topic] = append(b.handlers[topic], queued...)
	}
	b.pending = map[Topic][]Handler{}
}

func (b *Bus) invoke(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithFields(logrus.Fields{"topic": ev.Topic, "panic": r}).
				Error("event handler panicked")
		}
	}()
	h(ev)
}
