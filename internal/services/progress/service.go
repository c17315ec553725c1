package progress

import (
	"context"
	"log/slog"
	"sync"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/storage"
)

// Service reads and merges the progress sub-document of a user record
// under optimistic versioning.
//
// Storage has no compare-and-swap primitive, so Update serializes the
// read-modify-write per user id through a keyed mutex: concurrent updates
// to one user cannot lose each other's deltas, and the stored version
// counts applied updates exactly.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.UserID]*sync.Mutex
}

// New creates a new ProgressService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		locks:   make(map[model.UserID]*sync.Mutex),
	}
}

// Get returns the user's progress
func (s *Service) Get(ctx context.Context, userID model.UserID) (*model.Progress, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := user.Progress.Clone()
	return &progress, nil
}

// Update applies a partial update to the user's progress and returns the
// new version and the merged progress.
//
// The version is incremented on every applied update, even one that
// carries neither field. A present passed level overwrites the stored one
// (last writer wins, no monotonicity check). Item entries are deltas
// accumulated by name; entries whose resulting amount is exactly zero are
// dropped, negative amounts are kept as-is.
func (s *Service) Update(ctx context.Context, userID model.UserID, update model.ProgressUpdate) (int, *model.Progress, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return 0, nil, err
	}

	user.Version++

	if update.PassedLevel != nil {
		user.Progress.PassedLevel = *update.PassedLevel
	}

	if update.Items != nil {
		user.Progress.Items = mergeItems(user.Progress.Items, update.Items)
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return 0, nil, err
	}

	s.logger.Debug("progress updated",
		slog.String("user_id", string(userID)),
		slog.Int("version", user.Version),
	)

	progress := user.Progress.Clone()
	return user.Version, &progress, nil
}

// userLock returns the mutex serializing updates for one user id
func (s *Service) userLock(userID model.UserID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// mergeItems accumulates deltas into the current items by name. Existing
// entries keep their position, names first seen in the deltas are appended
// in delta order, and entries that reach exactly zero are pruned.
func mergeItems(current, deltas []model.Item) []model.Item {
	amounts := make(map[string]int, len(current)+len(deltas))
	order := make([]string, 0, len(current)+len(deltas))

	for _, item := range current {
		if _, ok := amounts[item.Name]; !ok {
			order = append(order, item.Name)
		}
		amounts[item.Name] += item.Amount
	}
	for _, delta := range deltas {
		if _, ok := amounts[delta.Name]; !ok {
			order = append(order, delta.Name)
		}
		amounts[delta.Name] += delta.Amount
	}

	merged := make([]model.Item, 0, len(order))
	for _, name := range order {
		if amounts[name] == 0 {
			continue
		}
		merged = append(merged, model.Item{Name: name, Amount: amounts[name]})
	}
	return merged
}
