package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted    EventType = "SearchStarted"
	EventSearchSettled    EventType = "SearchSettled"
	EventSearchFailed     EventType = "SearchFailed"
	EventSearchSuperseded EventType = "SearchSuperseded"
	EventFiltersChanged   EventType = "FiltersChanged"
)

// StateEventTypes are the events that carry a new orchestrator snapshot
var StateEventTypes = []EventType{
	EventSearchStarted,
	EventSearchSettled,
	EventSearchFailed,
	EventFiltersChanged,
}

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// StateChangedEvent is implemented by events that publish a new snapshot
type StateChangedEvent interface {
	DomainEvent
	Snapshot() State
}

// SearchStartedEvent is emitted when a request is issued and the state enters loading
type SearchStartedEvent struct {
	State State
	URL   string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }
func (e SearchStartedEvent) Snapshot() State { return e.State }

// SearchSettledEvent is emitted when the current request succeeds
type SearchSettledEvent struct {
	State State
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }
func (e SearchSettledEvent) Snapshot() State { return e.State }

// SearchFailedEvent is emitted when the current request fails
type SearchFailedEvent struct {
	State State
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }
func (e SearchFailedEvent) Snapshot() State { return e.State }

// SearchSupersededEvent is emitted when a response arrives for a request that
// is no longer the latest one. It carries no state; the outcome was dropped.
type SearchSupersededEvent struct {
	RequestID uint64
	LatestID  uint64
}

func (e SearchSupersededEvent) Type() EventType { return EventSearchSuperseded }

// FiltersChangedEvent is emitted when the difficulty or tag selection changes
type FiltersChangedEvent struct {
	State State
}

func (e FiltersChangedEvent) Type() EventType { return EventFiltersChanged }
func (e FiltersChangedEvent) Snapshot() State { return e.State }
