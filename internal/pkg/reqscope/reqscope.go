// Package reqscope carries a per-request memo table through a context.
// A scope lives exactly as long as the request that created it; there is no
// process-wide cache.
package reqscope

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ctxKey struct{}

// Scope holds values memoized for one logical request.
type Scope struct {
	id     string
	mu     sync.Mutex
	values map[string]interface{}
	group  singleflight.Group
}

// New creates a scope with a fresh request id.
func New() *Scope {
	return NewWithID(uuid.NewString())
}

// NewWithID creates a scope for a caller-provided request id.
func NewWithID(id string) *Scope {
	if id == "" {
		id = uuid.NewString()
	}
	return &Scope{id: id, values: make(map[string]interface{})}
}

// ID returns the request id.
func (s *Scope) ID() string { return s.id }

// Len returns the number of memoized values.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// WithScope returns a context carrying s.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the scope stored in ctx, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	return s, ok
}

// RequestID returns the scope's request id, or "" outside a scope.
func RequestID(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.id
	}
	return ""
}

// Memo returns the value memoized under key in ctx's scope, computing it with
// fn on first use. Concurrent callers for the same key share one call.
// Errors are not memoized. Without a scope fn is called every time.
func Memo[T any](ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return fn(ctx)
	}

	s.mu.Lock()
	if v, hit := s.values[key]; hit {
		s.mu.Unlock()
		return v.(T), nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.values[key] = val
		s.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
