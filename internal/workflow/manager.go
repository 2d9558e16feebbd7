package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"categoryassign/internal/config"
	"categoryassign/internal/event"
	"categoryassign/internal/logging"
	"categoryassign/internal/store"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrTransitionBlocked is returned when a listener vetoes a transition.
var ErrTransitionBlocked = errors.New("transition blocked by listener")

// Manager runs workflow operations against the content store.
type Manager struct {
	cfg        *config.Config
	store      *store.Store
	dispatcher *event.Dispatcher
	logger     *slog.Logger

	mu   sync.Mutex
	lock *flock.Flock
}

// NewManager constructs a workflow manager. A nil dispatcher is replaced by an
// empty one.
func NewManager(cfg *config.Config, st *store.Store, dispatcher *event.Dispatcher, logger *slog.Logger) (*Manager, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("workflow manager requires config and store")
	}
	if dispatcher == nil {
		dispatcher = event.NewDispatcher(logger)
	}
	return &Manager{
		cfg:        cfg,
		store:      st,
		dispatcher: dispatcher,
		logger:     logging.NewComponentLogger(logger, "workflow"),
		lock:       flock.New(cfg.LockPath()),
	}, nil
}

// Dispatcher exposes the dispatcher listeners subscribe to.
func (m *Manager) Dispatcher() *event.Dispatcher {
	return m.dispatcher
}

// Store exposes the underlying content store.
func (m *Manager) Store() *store.Store {
	return m.store
}

// acquire serializes transitions within the process and across processes
// sharing the data directory. The returned func releases both.
func (m *Manager) acquire(ctx context.Context) (func(), error) {
	m.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(m.lock.Path()), 0o755); err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	locked, err := m.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("acquire workflow lock: %w", err)
	}
	if !locked {
		m.mu.Unlock()
		return nil, fmt.Errorf("acquire workflow lock: %s is held by another process", m.lock.Path())
	}
	return func() {
		if err := m.lock.Unlock(); err != nil {
			m.logger.Warn("failed to release workflow lock", logging.Error(err))
		}
		m.mu.Unlock()
	}, nil
}
