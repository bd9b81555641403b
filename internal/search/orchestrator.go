// Package search owns the query and filter state of a search session and the
// lifecycle of its requests.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"desearch/internal/codec"
	"desearch/internal/domain"
	"desearch/internal/eventbus"
	"desearch/internal/transport"
)

// DefaultBaseURL is used when no base URL option is given
const DefaultBaseURL = "http://localhost:8001"

// ErrNilTransport is returned by NewOrchestrator when no transport is supplied
var ErrNilTransport = errors.New("search: transport is required")

// StatusError is the failure recorded for a non-2xx response
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithBaseURL sets the service base URL requests are sent to
func WithBaseURL(baseURL string) Option {
	return func(o *Orchestrator) {
		if strings.TrimSpace(baseURL) != "" {
			o.baseURL = baseURL
		}
	}
}

// WithLimit asks the service for at most n hits; zero keeps the service default
func WithLimit(n int) Option {
	return func(o *Orchestrator) { o.limit = n }
}

// WithBus publishes state changes on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(o *Orchestrator) { o.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInitialFilters seeds the filter selection
func WithInitialFilters(f domain.Filters) Option {
	return func(o *Orchestrator) { o.filters = f.Clone() }
}

// Orchestrator holds the filter selection and the result of the most
// recently issued search. All methods are safe for concurrent use.
//
// Every call to Search takes a new token from a monotonically increasing
// sequence. When a request settles, its outcome is applied only if its token
// is still the latest one; otherwise the response is dropped.
type Orchestrator struct {
	transport transport.Transport
	baseURL   string
	limit     int
	bus       eventbus.EventBus
	logger    *zap.Logger
	tracer    trace.Tracer

	mu            sync.Mutex
	seq           uint64
	version       uint64
	phase         domain.Phase
	query         string
	filters       domain.Filters
	results       []domain.Result
	errMsg        string
	cancelCurrent context.CancelFunc
}

// NewOrchestrator creates an orchestrator in the idle state
func NewOrchestrator(t transport.Transport, opts ...Option) (*Orchestrator, error) {
	if t == nil {
		return nil, ErrNilTransport
	}
	o := &Orchestrator{
		transport: t,
		baseURL:   DefaultBaseURL,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer("desearch/search"),
		phase:     domain.PhaseIdle,
		results:   []domain.Result{},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.Named("search")
	return o, nil
}

// SetDifficulty selects level. Selecting the level that is already selected
// clears the difficulty filter.
func (o *Orchestrator) SetDifficulty(level domain.Difficulty) {
	o.mu.Lock()
	if o.filters.Difficulty == level {
		o.filters = domain.NewFilters(domain.DifficultyUnset, o.filters.Tags()...)
	} else {
		o.filters = domain.NewFilters(level, o.filters.Tags()...)
	}
	state := o.publishLocked()
	o.mu.Unlock()

	o.logger.Debug("difficulty changed", zap.String("difficulty", string(state.Filters.Difficulty)))
	o.emit(domain.FiltersChangedEvent{State: state})
}

// ToggleTag adds tag to the selection, or removes it if already selected.
// Blank tags are ignored.
func (o *Orchestrator) ToggleTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}

	o.mu.Lock()
	tags := o.filters.Tags()
	if o.filters.HasTag(tag) {
		kept := tags[:0]
		for _, t := range tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		tags = kept
	} else {
		tags = append(tags, tag)
	}
	o.filters = domain.NewFilters(o.filters.Difficulty, tags...)
	state := o.publishLocked()
	o.mu.Unlock()

	o.logger.Debug("tags changed", zap.Strings("tags", state.Filters.Tags()))
	o.emit(domain.FiltersChangedEvent{State: state})
}

// ClearFilters drops the difficulty and every selected tag
func (o *Orchestrator) ClearFilters() {
	o.mu.Lock()
	if o.filters.IsEmpty() {
		o.mu.Unlock()
		return
	}
	o.filters = domain.Filters{}
	state := o.publishLocked()
	o.mu.Unlock()

	o.emit(domain.FiltersChangedEvent{State: state})
}

// Search issues a request for query with the current filters and blocks until
// it settles. A query that is empty after trimming is ignored. The returned
// snapshot is the state after settlement; if a newer search was issued in the
// meantime, this call's outcome is discarded and the newer state is returned.
func (o *Orchestrator) Search(ctx context.Context, query string) domain.State {
	query = strings.TrimSpace(query)
	if query == "" {
		return o.Snapshot()
	}
	return o.run(ctx, query)
}

// Refresh repeats the last non-empty query with the current filters. It is a
// no-op before the first search.
func (o *Orchestrator) Refresh(ctx context.Context) domain.State {
	o.mu.Lock()
	query := o.query
	o.mu.Unlock()

	if query == "" {
		return o.Snapshot()
	}
	return o.run(ctx, query)
}

func (o *Orchestrator) run(ctx context.Context, query string) domain.State {
	ctx, span := o.tracer.Start(ctx, "desearch.search", trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if o.cancelCurrent != nil {
		o.cancelCurrent()
	}
	o.cancelCurrent = cancel
	o.seq++
	token := o.seq
	o.query = query
	o.phase = domain.PhaseLoading
	o.errMsg = ""
	encoded := codec.EncodeWithLimit(query, o.filters.Difficulty, o.filters.Tags(), o.limit)
	url := codec.RequestURL(o.baseURL, encoded)
	started := o.publishLocked()
	o.mu.Unlock()

	span.SetAttributes(attribute.Int64("search.token", int64(token)))
	o.logger.Debug("search started", zap.Uint64("token", token), zap.String("url", url))
	o.emit(domain.SearchStartedEvent{State: started, URL: url})

	reqCtx = transport.WithRequestID(reqCtx, fmt.Sprintf("search-%d", token))
	resp, err := o.transport.Get(reqCtx, url)
	if err == nil && !resp.OK() {
		err = &StatusError{StatusCode: resp.StatusCode}
	}
	var results []domain.Result
	if err == nil {
		results = codec.Decode(resp.Body)
	}

	o.mu.Lock()
	if token != o.seq {
		latest := o.seq
		state := o.snapshotLocked()
		o.mu.Unlock()

		span.SetAttributes(attribute.Bool("search.superseded", true))
		o.logger.Debug("discarding superseded response", zap.Uint64("token", token), zap.Uint64("latest", latest))
		o.emit(domain.SearchSupersededEvent{RequestID: token, LatestID: latest})
		return state
	}

	o.cancelCurrent = nil
	if err != nil {
		o.phase = domain.PhaseFailed
		o.results = []domain.Result{}
		o.errMsg = errorMessage(err)
		state := o.publishLocked()
		o.mu.Unlock()

		span.RecordError(err)
		o.logger.Warn("search failed", zap.Uint64("token", token), zap.String("url", url), zap.Error(err))
		o.emit(domain.SearchFailedEvent{State: state, Err: err})
		return state
	}

	o.phase = domain.PhaseSettled
	o.results = results
	o.errMsg = ""
	state := o.publishLocked()
	o.mu.Unlock()

	span.SetAttributes(attribute.Int("search.hits", len(results)))
	o.logger.Info("search settled", zap.Uint64("token", token), zap.String("query", query), zap.Int("hits", len(results)))
	o.emit(domain.SearchSettledEvent{State: state})
	return state
}

// Snapshot returns a copy of the current state
func (o *Orchestrator) Snapshot() domain.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// Results returns the current result list in service order
func (o *Orchestrator) Results() []domain.Result {
	return o.Snapshot().Results
}

// IsLoading reports whether the latest request is still in flight
func (o *Orchestrator) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase == domain.PhaseLoading
}

// Err returns the message of the last failure, or "" if the latest request did not fail
func (o *Orchestrator) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// Difficulty returns the selected difficulty
func (o *Orchestrator) Difficulty() domain.Difficulty {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filters.Difficulty
}

// Tags returns the selected tags, sorted
func (o *Orchestrator) Tags() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filters.Tags()
}

// Query returns the last query that was searched for
func (o *Orchestrator) Query() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.query
}

// publishLocked bumps the version and returns the new snapshot. Caller holds mu.
func (o *Orchestrator) publishLocked() domain.State {
	o.version++
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() domain.State {
	results := make([]domain.Result, len(o.results))
	copy(results, o.results)
	return domain.State{
		Phase:     o.phase,
		Query:     o.query,
		Filters:   o.filters.Clone(),
		Results:   results,
		Err:       o.errMsg,
		Version:   o.version,
		RequestID: o.seq,
	}
}

func (o *Orchestrator) emit(event domain.DomainEvent) {
	if o.bus != nil {
		o.bus.Publish(event)
	}
}

// errorMessage turns a failure into the text shown to the user
func errorMessage(err error) string {
	var statusErr *StatusError
	var timeoutErr interface{ Timeout() bool }
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &timeoutErr) && timeoutErr.Timeout():
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return err.Error()
	}
}
