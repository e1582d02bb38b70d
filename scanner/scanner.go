// Package scanner walks contract event logs and resolves the objects they
// point at.
package scanner

import (
	"context"
	"errors"
	"fmt"

	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/sui"
)

var ErrExhausted = errors.New("scanner: sequence exhausted")

// Extractor pulls the correlated object id out of an event payload. It
// returns false to skip the event.
type Extractor func(payload map[string]interface{}) (string, bool)

// Field extracts a string payload field.
func Field(name string) Extractor {
	return func(payload map[string]interface{}) (string, bool) {
		s, ok := payload[name].(string)
		return s, ok && s != ""
	}
}

// Match keeps events whose payload field equals value.
func Match(field, value string) func(map[string]interface{}) bool {
	return func(payload map[string]interface{}) bool {
		s, ok := payload[field].(string)
		return ok && s == value
	}
}

type Scanner struct {
	client   sui.Client
	pageSize int
}

func New(client sui.Client, pageSize int) *Scanner {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Scanner{client: client, pageSize: pageSize}
}

// Sequence is a finite, non-restartable, lazily paged stream of events.
type Sequence struct {
	client    sui.Client
	eventType string
	pageSize  int
	cursor    *sui.EventID
	buf       []sui.Event
	started   bool
	done      bool
}

func (s *Scanner) Events(eventType string) *Sequence {
	return &Sequence{client: s.client, eventType: eventType, pageSize: s.pageSize}
}

// NextEvent returns the next event, fetching a page when the buffer is empty.
// After the last event it returns ErrExhausted.
func (q *Sequence) NextEvent(ctx context.Context) (sui.Event, error) {
	for len(q.buf) == 0 {
		if q.done {
			return sui.Event{}, ErrExhausted
		}
		if q.started && q.cursor == nil {
			q.done = true
			continue
		}
		page, err := q.client.QueryEvents(ctx, q.eventType, q.cursor, q.pageSize, false)
		if err != nil {
			return sui.Event{}, fmt.Errorf("nextEvent: %w", err)
		}
		q.started = true
		q.buf = page.Data
		q.cursor = nil
		if page.HasNextPage {
			q.cursor = page.NextCursor
		}
		if q.cursor == nil && len(q.buf) == 0 {
			q.done = true
		}
	}
	e := q.buf[0]
	q.buf = q.buf[1:]
	return e, nil
}

// IDs drains the sequence, collecting extracted ids. Duplicates are kept.
func (q *Sequence) IDs(ctx context.Context, extract Extractor) ([]string, error) {
	var ids []string
	for {
		e, err := q.NextEvent(ctx)
		if errors.Is(err, ErrExhausted) {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		if id, ok := extract(e.ParsedJSON); ok {
			ids = append(ids, id)
		}
	}
}

// Payloads drains the sequence, keeping payloads accepted by keep.
func (q *Sequence) Payloads(ctx context.Context, keep func(map[string]interface{}) bool) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	for {
		e, err := q.NextEvent(ctx)
		if errors.Is(err, ErrExhausted) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(e.ParsedJSON) {
			out = append(out, e.ParsedJSON)
		}
	}
}

// Resolve scans eventType, resolves every extracted id through r and keeps
// the ones that decode to T. Absent objects are dropped silently.
func Resolve[T model.Entity](ctx context.Context, s *Scanner, r *reader.Reader, eventType string, extract Extractor) ([]T, error) {
	ids, err := s.Events(eventType).IDs(ctx, extract)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	es, err := r.Many(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	out := reader.Of[T](es)
	if dropped := len(ids) - len(out); dropped > 0 {
		logger.Debugf(ctx, "resolve: dropped %d absent objects from %s", dropped, eventType)
	}
	return out, nil
}

// Reviews returns the decoded ReviewAdded payloads for providerID.
func Reviews(ctx context.Context, s *Scanner, eventType, providerID string) ([]model.Review, error) {
	payloads, err := s.Events(eventType).Payloads(ctx, Match("provider_id", providerID))
	if err != nil {
		return nil, fmt.Errorf("reviews: %w", err)
	}
	var out []model.Review
	for _, p := range payloads {
		if rv, ok := reader.DecodeReview(p); ok {
			out = append(out, rv)
		}
	}
	return out, nil
}
