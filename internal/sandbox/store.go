// Package sandbox persists published architecture snapshots. The store runs
// on an in-process map by default and on Postgres when a DSN is configured;
// both backends expose the same operations: insert with id-collision retry,
// point lookup with atomic view increment, and filtered, paginated listing.
package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned for point lookups of unknown sandbox ids.
var ErrNotFound = errors.New("sandbox: not found")

// ErrIDExhausted is returned when id generation keeps colliding.
var ErrIDExhausted = errors.New("sandbox: could not allocate a unique id")

const idRetries = 5

type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	byID  map[string]Sandbox
	order []string // insertion order, newest appended last

	schemaOnce sync.Once
	schemaErr  error

	now func() time.Time
}

// New returns an in-memory store.
func New() *Store {
	return &Store{
		byID: make(map[string]Sandbox),
		now:  time.Now,
	}
}

// NewPostgres opens a Postgres-backed store over the pgx stdlib driver.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// NewFromEnv picks the Postgres backend when dsn is non-empty and reachable,
// falling back to memory otherwise.
func NewFromEnv(dsn string) *Store {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return New()
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New()
	}
	return s
}

// Close releases the database handle, if any.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// newID yields an 8-character sandbox id.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Publish stores the sandbox under a freshly generated id, retrying on the
// unlikely id collision. Tech stack and timestamps are derived here; the
// caller supplies name, description, graph, and cost.
func (s *Store) Publish(ctx context.Context, in Sandbox) (Sandbox, error) {
	in.TechStack = TechStackOf(in.Architecture)
	now := s.now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now
	in.IsPublic = true
	in.Views = 0

	for attempt := 0; attempt < idRetries; attempt++ {
		in.ID = newID()
		var (
			inserted bool
			err      error
		)
		if s.db != nil {
			inserted, err = s.insertDB(ctx, in)
		} else {
			inserted = s.insertMemory(in)
		}
		if err != nil {
			return Sandbox{}, err
		}
		if inserted {
			return in, nil
		}
	}
	return Sandbox{}, ErrIDExhausted
}

// Get returns the sandbox and atomically increments its view counter. The
// returned value carries the incremented count.
func (s *Store) Get(ctx context.Context, id string) (Sandbox, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Sandbox{}, ErrNotFound
	}
	if s.db != nil {
		return s.getDB(ctx, id)
	}
	return s.getMemory(id)
}

// List returns public sandboxes matching the filters, newest first.
func (s *Store) List(ctx context.Context, f Filters) ([]ListItem, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if s.db != nil {
		return s.listDB(ctx, f)
	}
	return s.listMemory(f), nil
}
