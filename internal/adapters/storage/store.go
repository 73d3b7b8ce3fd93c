package storage

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"procurehub/internal/metrics"
)

// ErrorHandler receives storage failures. Store never returns them to callers.
type ErrorHandler func(op, key string, err error)

func logError(op, key string, err error) {
	log.Printf("⚠️ Storage %s failed [key: %s]: %v", op, key, err)
}

// Store encodes values as JSON on top of a Backend and swallows every failure
type Store struct {
	backend Backend
	onError ErrorHandler

	// serializes read-modify-write sequences
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithErrorHandler replaces the default log handler
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Store) {
		if h != nil {
			s.onError = h
		}
	}
}

// NewStore wraps backend. A nil backend yields an unavailable store.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, onError: logError}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a backend is attached
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

func (s *Store) report(op, key string, err error) {
	metrics.StorageFailures.WithLabelValues(op).Inc()
	s.onError(op, key, err)
}

// Get decodes the value under key, returning def when the store is unavailable,
// the key is absent or the value cannot be decoded.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	if !s.Available() {
		return def
	}
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.report("get", key, err)
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.report("decode", key, err)
		return def
	}
	reviveDates(&v)
	return v
}

// Set encodes v under key
func Set[T any](ctx context.Context, s *Store, key string, v T) {
	if !s.Available() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.report("encode", key, err)
		return
	}
	if err := s.backend.Set(ctx, key, string(b)); err != nil {
		s.report("set", key, err)
	}
}

// Update runs a read-modify-write on key while holding the store lock
func Update[T any](ctx context.Context, s *Store, key string, def T, fn func(T) (T, error)) error {
	if !s.Available() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(Get(ctx, s, key, def))
	if err != nil {
		return err
	}
	Set(ctx, s, key, next)
	return nil
}

// Remove deletes key
func (s *Store) Remove(ctx context.Context, key string) {
	if !s.Available() {
		return
	}
	if err := s.backend.Remove(ctx, key); err != nil {
		s.report("remove", key, err)
	}
}

// Clear removes every key in the application namespace and leaves foreign keys alone
func (s *Store) Clear(ctx context.Context) {
	if !s.Available() {
		return
	}
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.report("clear", "*", err)
		return
	}
	for _, k := range keys {
		if strings.HasPrefix(k, KeyPrefix) {
			s.Remove(ctx, k)
		}
	}
}

// Has reports whether key is present
func (s *Store) Has(ctx context.Context, key string) bool {
	if !s.Available() {
		return false
	}
	_, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.report("get", key, err)
		return false
	}
	return ok
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// reviveDates turns ISO-8601 strings back into time.Time inside dynamic targets.
// Typed targets already decode time.Time fields natively.
func reviveDates[T any](v *T) {
	switch p := any(v).(type) {
	case *any:
		*p = revive(*p)
	case *map[string]any:
		for k, e := range *p {
			(*p)[k] = revive(e)
		}
	case *[]any:
		for i, e := range *p {
			(*p)[i] = revive(e)
		}
	}
}

func revive(v any) any {
	switch t := v.(type) {
	case string:
		if isoDate.MatchString(t) {
			if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
				return ts
			}
		}
	case map[string]any:
		for k, e := range t {
			t[k] = revive(e)
		}
	case []any:
		for i, e := range t {
			t[i] = revive(e)
		}
	}
	return v
}
