package domain

// AggregateRoot holds the pending domain events an aggregate has produced but
// not yet published. Embed it in aggregate types.
//
// The queue is not safe for concurrent use; an aggregate instance belongs to a
// single dispatch context at a time.
type AggregateRoot struct {
	events []Event
}

// Record appends an event to the pending queue.
func (a *AggregateRoot) Record(event Event) {
	a.events = append(a.events, event)
}

// PullEvents returns all pending events in the order they were recorded and
// clears the queue in the same step. A second call returns nothing until new
// events are recorded.
func (a *AggregateRoot) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}

// HasEvents reports whether events are waiting to be pulled.
func (a *AggregateRoot) HasEvents() bool {
	return len(a.events) > 0
}
