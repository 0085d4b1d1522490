// Package store holds the client's view of the users collection and keeps
// it in step with the service.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"userapp/internal/client/api"
	"userapp/internal/client/storage"
	"userapp/internal/core/domain"
)

// DeletedUserIDsKey is the storage key of the suppression set.
const DeletedUserIDsKey = "deletedUserIds"

// API is the subset of the service client the store drives.
type API interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, payload api.UserPayload) (int64, error)
	Update(ctx context.Context, id int64, payload api.UserPayload) error
	Delete(ctx context.Context, id int64) error
}

type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []func(State)

	api     API
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a store and loads the suppression set from st.
func New(ctx context.Context, client API, st storage.Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{api: client, storage: st, logger: logger}
	s.state.DeletedIDs = s.loadDeletedIDs(ctx)
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to be called with the new state after every
// dispatched action.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state.clone()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return snapshot
}

func (s *Store) fail(kind Kind, err error) error {
	s.dispatch(Action{Kind: kind, Phase: PhaseFailed, Err: err.Error()})
	return err
}

func (s *Store) Fetch(ctx context.Context) error {
	s.dispatch(Action{Kind: KindFetch, Phase: PhaseRequested})

	users, err := s.api.List(ctx)
	if err != nil {
		return s.fail(KindFetch, err)
	}

	s.dispatch(Action{Kind: KindFetch, Phase: PhaseSucceeded, Users: users})
	return nil
}

// AddUser creates a user and appends it, built from the submitted fields and
// the id the service assigned.
func (s *Store) AddUser(ctx context.Context, payload api.UserPayload) (int64, error) {
	s.dispatch(Action{Kind: KindCreate, Phase: PhaseRequested})

	id, err := s.api.Create(ctx, payload)
	if err != nil {
		return 0, s.fail(KindCreate, err)
	}

	s.dispatch(Action{Kind: KindCreate, Phase: PhaseSucceeded, User: userFrom(id, payload)})
	return id, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, payload api.UserPayload) error {
	s.dispatch(Action{Kind: KindUpdate, Phase: PhaseRequested})

	if err := s.api.Update(ctx, id, payload); err != nil {
		return s.fail(KindUpdate, err)
	}

	s.dispatch(Action{Kind: KindUpdate, Phase: PhaseSucceeded, User: userFrom(id, payload)})
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.dispatch(Action{Kind: KindDelete, Phase: PhaseRequested})

	if err := s.api.Delete(ctx, id); err != nil {
		return s.fail(KindDelete, err)
	}

	s.dispatch(Action{Kind: KindDelete, Phase: PhaseSucceeded, IDs: []int64{id}})
	return nil
}

// DeleteUsers deletes every id with its own concurrent request. The list is
// only changed when all of them succeed.
func (s *Store) DeleteUsers(ctx context.Context, ids []int64) error {
	s.dispatch(Action{Kind: KindDeleteMany, Phase: PhaseRequested})

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			return s.api.Delete(gctx, id)
		})
	}

	if err := g.Wait(); err != nil {
		return s.fail(KindDeleteMany, err)
	}

	s.dispatch(Action{Kind: KindDeleteMany, Phase: PhaseSucceeded, IDs: ids})
	return nil
}

// Suppress hides ids locally and persists the suppression set. The service
// is not contacted. Storage failures are logged and otherwise ignored.
func (s *Store) Suppress(ctx context.Context, ids []int64) {
	state := s.dispatch(Action{Kind: KindSuppress, IDs: ids})
	s.saveDeletedIDs(ctx, state.DeletedIDs)
}

func (s *Store) loadDeletedIDs(ctx context.Context) []int64 {
	if s.storage == nil {
		return []int64{}
	}

	raw, err := s.storage.Get(ctx, DeletedUserIDsKey)
	if err != nil {
		s.logger.Warn("failed to load suppressed ids", "error", err)
		return []int64{}
	}
	if raw == nil {
		return []int64{}
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		s.logger.Warn("ignoring corrupt suppressed ids", "error", err)
		return []int64{}
	}
	return union([]int64{}, ids)
}

func (s *Store) saveDeletedIDs(ctx context.Context, ids []int64) {
	if s.storage == nil {
		return
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		s.logger.Warn("failed to encode suppressed ids", "error", err)
		return
	}
	if err := s.storage.Set(ctx, DeletedUserIDsKey, raw); err != nil {
		s.logger.Warn("failed to save suppressed ids", "error", err)
	}
}

func userFrom(id int64, p api.UserPayload) domain.User {
	return domain.User{ID: id, Name: p.Name, Email: p.Email, Password: p.Password, Phone: p.Phone}
}
