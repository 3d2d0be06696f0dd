// Package domain defines the business logic for the shift tracking service.
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"example.com/shifttrack/internal/observability"
)

// ShiftRepository captures remote-store persistence operations. Every query
// is scoped to the owning user; the core never operates across users.
type ShiftRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Shift, error)
	Create(ctx context.Context, shift Shift) error
	// Update replaces the full record matching (id, user_id) and returns the
	// stored record with its original creation time. A nil shift means no row
	// matched.
	Update(ctx context.Context, shift Shift) (*Shift, error)
	Delete(ctx context.Context, userID, shiftID string) error
	Balance(ctx context.Context, userID string) (int64, error)
	UpdateBalance(ctx context.Context, userID string, balance int64) (int64, error)
}

// SnapshotStore is the local durable cache: one keyed blob per logical
// dataset. Update applies a read-modify-write atomically for its key so
// sibling fields stored under the same blob are never clobbered.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	Update(ctx context.Context, key string, fn func(prev []byte, found bool) ([]byte, error)) error
}

// Preferences is the consolidated user-preference state kept in the shift
// snapshot blob, read once at startup and written through one mutation path.
type Preferences struct {
	Theme        string  `json:"theme"`
	ColorVariant int     `json:"color_variant"`
	Language     string  `json:"language"`
	DefaultWage  float64 `json:"default_wage"`
}

// DefaultPreferences returns the preferences applied before a user saved any.
func DefaultPreferences() Preferences {
	return Preferences{Theme: "light", Language: LanguageDefault}
}

// shiftSnapshot is the shifts-and-preferences blob cached per user.
type shiftSnapshot struct {
	Shifts      []Shift     `json:"shifts"`
	Preferences Preferences `json:"preferences"`
	CachedAt    time.Time   `json:"cached_at"`
}

// userSnapshot is the user-data blob cached per user.
type userSnapshot struct {
	Balance  int64     `json:"balance"`
	CachedAt time.Time `json:"cached_at"`
}

// ListResult carries a shift collection plus the degraded-mode signal set
// when the collection was served from the local snapshot.
type ListResult struct {
	Shifts   []Shift
	Degraded bool
}

// BalanceResult mirrors ListResult for the companion balance value.
type BalanceResult struct {
	Balance  int64
	Degraded bool
}

// Service is the persistence gateway: it reconciles the remote store with
// the local snapshot cache. The remote store is authoritative whenever it is
// reachable; the snapshot is an advisory projection.
type Service struct {
	repo   ShiftRepository
	cache  SnapshotStore
	logger *log.Logger
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(repo ShiftRepository, cache SnapshotStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListShifts fetches the user's shifts from the remote store, ordered by
// date descending at the source. When the remote store is unreachable it
// falls back to the last snapshot and flags the result as degraded.
func (s *Service) ListShifts(ctx context.Context, userID string) (ListResult, error) {
	if userID == "" {
		return ListResult{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	shifts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		snap, ok := s.readShiftSnapshot(ctx, userID)
		if !ok {
			return ListResult{}, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		s.logger.Printf("remote list failed for user %s, serving snapshot from %s: %v", userID, snap.CachedAt.Format(time.RFC3339), err)
		observability.RecordDegradedRead()
		return ListResult{Shifts: snap.Shifts, Degraded: true}, nil
	}

	s.replaceShiftSnapshot(ctx, userID, shifts)
	return ListResult{Shifts: shifts}, nil
}

// CreateShift validates the draft, derives the computed fields, persists the
// record remotely and only then writes it through to the snapshot. A rejected
// remote write leaves the prior state intact.
func (s *Service) CreateShift(ctx context.Context, userID string, draft ShiftDraft) (*Shift, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	shift := Shift{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      draft.Date,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Wage:      draft.Wage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	shift.Derive(s.language(ctx, userID))

	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	observability.RecordShiftPersisted(now)

	s.mutateShiftSnapshot(ctx, userID, func(list []Shift) []Shift {
		return append(list, shift)
	})
	return &shift, nil
}

// UpdateShift replaces the full record scoped to (id, user). An update that
// matches no row, including an ownership mismatch, resolves to
// ErrShiftNotFound rather than silently succeeding.
func (s *Service) UpdateShift(ctx context.Context, userID, shiftID string, draft ShiftDraft) (*Shift, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if shiftID == "" {
		return nil, fmt.Errorf("%w: shift id is required", ErrValidation)
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	shift := Shift{
		ID:        shiftID,
		UserID:    userID,
		Date:      draft.Date,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Wage:      draft.Wage,
		UpdatedAt: s.now(),
	}
	shift.Derive(s.language(ctx, userID))

	updated, err := s.repo.Update(ctx, shift)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrShiftNotFound, shiftID)
	}
	shift = *updated
	observability.RecordShiftPersisted(shift.UpdatedAt)

	s.mutateShiftSnapshot(ctx, userID, func(list []Shift) []Shift {
		for i := range list {
			if list[i].ID == shiftID {
				list[i] = shift
			}
		}
		return list
	})
	return &shift, nil
}

// DeleteShift removes the record scoped to (id, user). Deleting an id that
// no longer exists is not an error.
func (s *Service) DeleteShift(ctx context.Context, userID, shiftID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if shiftID == "" {
		return fmt.Errorf("%w: shift id is required", ErrValidation)
	}

	if err := s.repo.Delete(ctx, userID, shiftID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.mutateShiftSnapshot(ctx, userID, func(list []Shift) []Shift {
		out := list[:0]
		for _, sh := range list {
			if sh.ID != shiftID {
				out = append(out, sh)
			}
		}
		return out
	})
	return nil
}

// Balance reads the companion account balance, falling back to the cached
// value when the remote store is unreachable.
func (s *Service) Balance(ctx context.Context, userID string) (BalanceResult, error) {
	if userID == "" {
		return BalanceResult{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		snap, ok := s.readUserSnapshot(ctx, userID)
		if !ok {
			return BalanceResult{}, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		observability.RecordDegradedRead()
		return BalanceResult{Balance: snap.Balance, Degraded: true}, nil
	}

	s.writeUserSnapshot(ctx, userID, balance)
	return BalanceResult{Balance: balance}, nil
}

// UpdateBalance writes the balance remote-first. A zero-row update, as seen
// when a row-level policy blocks the write, keeps the local value as a
// best-effort fallback instead of failing the user-facing operation.
func (s *Service) UpdateBalance(ctx context.Context, userID string, balance int64) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}

	rows, err := s.repo.UpdateBalance(ctx, userID, balance)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if rows == 0 {
		s.logger.Printf("balance update for user %s affected no rows, keeping local value", userID)
		observability.RecordBalanceFallback()
	}

	s.writeUserSnapshot(ctx, userID, balance)
	return nil
}

// Preferences returns the cached preferences, or the defaults when the user
// never saved any.
func (s *Service) Preferences(ctx context.Context, userID string) Preferences {
	snap, ok := s.readShiftSnapshot(ctx, userID)
	if !ok || snap.Preferences == (Preferences{}) {
		return DefaultPreferences()
	}
	return snap.Preferences
}

// SavePreferences persists preferences into the shift snapshot blob without
// touching the cached shift list.
func (s *Service) SavePreferences(ctx context.Context, userID string, prefs Preferences) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if prefs.Language == "" {
		prefs.Language = LanguageDefault
	}

	err := s.cache.Update(ctx, shiftKey(userID), func(prev []byte, found bool) ([]byte, error) {
		var snap shiftSnapshot
		if found {
			_ = json.Unmarshal(prev, &snap)
		}
		snap.Preferences = prefs
		snap.CachedAt = s.now()
		return json.Marshal(snap)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCache, err)
	}
	return nil
}

func (s *Service) language(ctx context.Context, userID string) string {
	return s.Preferences(ctx, userID).Language
}

func shiftKey(userID string) string { return "shifts:" + userID }
func userKey(userID string) string  { return "user:" + userID }

func (s *Service) readShiftSnapshot(ctx context.Context, userID string) (shiftSnapshot, bool) {
	payload, found, err := s.cache.Get(ctx, shiftKey(userID))
	if err != nil {
		s.logger.Printf("snapshot read failed for user %s: %v", userID, err)
		return shiftSnapshot{}, false
	}
	if !found {
		return shiftSnapshot{}, false
	}
	var snap shiftSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		s.logger.Printf("snapshot for user %s is corrupt: %v", userID, err)
		return shiftSnapshot{}, false
	}
	return snap, true
}

func (s *Service) readUserSnapshot(ctx context.Context, userID string) (userSnapshot, bool) {
	payload, found, err := s.cache.Get(ctx, userKey(userID))
	if err != nil || !found {
		return userSnapshot{}, false
	}
	var snap userSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return userSnapshot{}, false
	}
	return snap, true
}

// replaceShiftSnapshot overwrites the cached shift list with fresh remote
// state, preserving the preferences stored under the same key.
func (s *Service) replaceShiftSnapshot(ctx context.Context, userID string, shifts []Shift) {
	s.mutateShiftSnapshot(ctx, userID, func([]Shift) []Shift { return shifts })
}

func (s *Service) mutateShiftSnapshot(ctx context.Context, userID string, fn func([]Shift) []Shift) {
	err := s.cache.Update(ctx, shiftKey(userID), func(prev []byte, found bool) ([]byte, error) {
		var snap shiftSnapshot
		if found {
			_ = json.Unmarshal(prev, &snap)
		}
		snap.Shifts = fn(snap.Shifts)
		snap.CachedAt = s.now()
		return json.Marshal(snap)
	})
	if err != nil {
		// Cache is advisory: a failed snapshot write degrades later offline
		// reads but must not fail an operation that already succeeded remotely.
		s.logger.Printf("snapshot write failed for user %s: %v", userID, err)
		observability.RecordCacheWriteFailure()
	}
}

func (s *Service) writeUserSnapshot(ctx context.Context, userID string, balance int64) {
	snap := userSnapshot{Balance: balance, CachedAt: s.now()}
	payload, err := json.Marshal(snap)
	if err == nil {
		err = s.cache.Put(ctx, userKey(userID), payload)
	}
	if err != nil {
		s.logger.Printf("user snapshot write failed for user %s: %v", userID, err)
		observability.RecordCacheWriteFailure()
	}
}
