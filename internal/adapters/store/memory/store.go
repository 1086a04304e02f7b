// Package memory provides an in-process ports.TodoStore backed by
// github.com/patrickmn/go-cache. Entries never expire; the store lives as long
// as the process.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

var _ ports.TodoStore = (*Store)(nil)

// Store keeps todos in a go-cache instance keyed by decimal ID.
// Reads go straight to the cache; writes hold mu so that the title
// uniqueness check and the write happen atomically.
type Store struct {
	cache  *cache.Cache
	mu     sync.Mutex
	nextID atomic.Int64
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the store in health reports.
func (s *Store) Name() string {
	return "memory-store"
}

// HealthCheck always succeeds; an in-process map cannot become unreachable.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

func (s *Store) List(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo] {
	if err := ctx.Err(); err != nil {
		return result.FromError[[]todo.Todo](domain.Canceled(err))
	}

	todos := make([]todo.Todo, 0, s.cache.ItemCount())
	for _, item := range s.cache.Items() {
		t := item.Object.(todo.Todo)
		if filter.Matches(t) {
			todos = append(todos, t)
		}
	}
	slices.SortFunc(todos, func(a, b todo.Todo) int { return cmp.Compare(a.ID, b.ID) })

	return result.Success(todos)
}

func (s *Store) Get(ctx context.Context, id int64) result.Result[*todo.Todo] {
	if err := ctx.Err(); err != nil {
		return result.FromError[*todo.Todo](domain.Canceled(err))
	}

	t, ok := s.load(id)
	if !ok {
		return result.FromError[*todo.Todo](domain.TodoNotFound(id))
	}
	return result.Success(&t)
}

func (s *Store) Create(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo] {
	if err := ctx.Err(); err != nil {
		return result.FromError[*todo.Todo](domain.Canceled(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleTaken(t.Title, 0) {
		return result.FromError[*todo.Todo](domain.DuplicateTitle(t.Title))
	}

	created := *t
	created.ID = s.nextID.Add(1)
	created.CreatedAt = s.now().UTC()
	created.UpdatedAt = created.CreatedAt
	s.cache.Set(key(created.ID), created, cache.NoExpiration)

	return result.Success(&created)
}

func (s *Store) Update(ctx context.Context, id int64, t *todo.Todo) result.Result[*todo.Todo] {
	if err := ctx.Err(); err != nil {
		return result.FromError[*todo.Todo](domain.Canceled(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.load(id)
	if !ok {
		return result.FromError[*todo.Todo](domain.TodoNotFound(id))
	}
	if s.titleTaken(t.Title, id) {
		return result.FromError[*todo.Todo](domain.DuplicateTitle(t.Title))
	}

	updated := *t
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now().UTC()
	s.cache.Set(key(id), updated, cache.NoExpiration)

	return result.Success(&updated)
}

func (s *Store) Delete(ctx context.Context, id int64) result.Result[struct{}] {
	if err := ctx.Err(); err != nil {
		return result.FromError[struct{}](domain.Canceled(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.load(id); !ok {
		return result.FromError[struct{}](domain.TodoNotFound(id))
	}
	s.cache.Delete(key(id))

	return result.Success(struct{}{})
}

func (s *Store) load(id int64) (todo.Todo, bool) {
	v, found := s.cache.Get(key(id))
	if !found {
		return todo.Todo{}, false
	}
	return v.(todo.Todo), true
}

// titleTaken reports whether a todo other than except already uses title.
// Titles are compared case-insensitively after trimming. Callers hold mu.
func (s *Store) titleTaken(title string, except int64) bool {
	title = strings.TrimSpace(title)
	for _, item := range s.cache.Items() {
		t := item.Object.(todo.Todo)
		if t.ID != except && strings.EqualFold(strings.TrimSpace(t.Title), title) {
			return true
		}
	}
	return false
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
