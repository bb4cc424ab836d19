package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/catalog"
	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/db"
)

// Store holds volunteers and assignments in memory and writes every
// mutation through to the backing KV before returning.
type Store struct {
	mu          sync.Mutex
	kv          db.KV
	catalog     *catalog.Catalog
	logger      *zap.Logger
	volunteers  []model.Volunteer
	assignments []model.Assignment
	managerMode bool

	newID func() string
	now   func() time.Time
}

// Option customises a Store
type Option func(*Store)

// WithIDGenerator replaces uuid generation (tests use deterministic ids)
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now for JoinedAt
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New creates an empty store. Call Load to read persisted state.
func New(kv db.KV, cat *catalog.Catalog, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		catalog: cat,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces in-memory state with what the KV holds.
// Missing keys mean defaults; unreadable or corrupt values are logged and
// replaced with defaults so startup never fails on bad state.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volunteers = loadJSON[model.Volunteer](ctx, s.kv, s.logger, db.KeyVolunteers)
	s.assignments = loadJSON[model.Assignment](ctx, s.kv, s.logger, db.KeyAssignments)

	s.managerMode = false
	raw, ok, err := s.kv.Get(ctx, db.KeyManagerMode)
	if err != nil {
		s.logger.Warn("Failed to read manager mode, defaulting to false", zap.Error(err))
	} else if ok {
		s.managerMode = raw == "true"
	}

	s.logger.Debug("Store loaded",
		zap.Int("volunteers", len(s.volunteers)),
		zap.Int("assignments", len(s.assignments)),
		zap.Bool("manager_mode", s.managerMode))
}

func loadJSON[T any](ctx context.Context, kv db.KV, logger *zap.Logger, key string) []T {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		logger.Warn("Failed to read stored state, using empty default", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Stored state is corrupt, using empty default", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// ToggleAssignment removes the (date, roomID, volunteerID) assignment if it
// exists and creates it otherwise. It is the single scheduling mutation; a
// Removed result on a call meant to assign means the triple already existed.
// The returned error only reports a persistence failure; the in-memory
// change has been made either way.
func (s *Store) ToggleAssignment(ctx context.Context, date, roomID, volunteerID string) (model.AssignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.assignments, func(a model.Assignment) bool {
		return a.Date == date && a.RoomID == roomID && a.VolunteerID == volunteerID
	})

	var result model.AssignResult
	if idx >= 0 {
		removed := s.assignments[idx]
		s.assignments = slices.Delete(s.assignments, idx, idx+1)
		result = model.Removed
		s.logger.Debug("Assignment removed by toggle",
			zap.String("id", removed.ID),
			zap.String("date", date),
			zap.String("room_id", roomID),
			zap.String("volunteer_id", volunteerID))
	} else {
		a := model.Assignment{
			ID:          s.newID(),
			Date:        date,
			RoomID:      roomID,
			VolunteerID: volunteerID,
		}
		s.assignments = append(s.assignments, a)
		result = model.Added
		s.logger.Debug("Assignment added by toggle",
			zap.String("id", a.ID),
			zap.String("date", date),
			zap.String("room_id", roomID),
			zap.String("volunteer_id", volunteerID))
	}

	return result, s.persistAssignments(ctx)
}

// RemoveAssignment deletes the assignment with id. An unknown id is a no-op
// and reports false.
func (s *Store) RemoveAssignment(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.assignments, func(a model.Assignment) bool { return a.ID == id })
	if idx < 0 {
		s.logger.Debug("RemoveAssignment: id not found, nothing to do", zap.String("id", id))
		return false, nil
	}

	s.assignments = slices.Delete(s.assignments, idx, idx+1)
	s.logger.Debug("Assignment removed", zap.String("id", id))
	return true, s.persistAssignments(ctx)
}

// AddVolunteer registers a new active volunteer. Name is trimmed and phone is
// reduced to its digits; invalid input returns a *ValidationError and leaves
// the store untouched.
func (s *Store) AddVolunteer(ctx context.Context, name, phone string) (*model.Volunteer, error) {
	in, err := validateVolunteer(name, phone)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := model.Volunteer{
		ID:       s.newID(),
		Name:     in.Name,
		Phone:    in.Phone,
		IsActive: true,
		JoinedAt: s.now().UTC(),
	}
	s.volunteers = append(s.volunteers, v)
	s.logger.Debug("Volunteer added", zap.String("id", v.ID), zap.String("name", v.Name))

	if err := s.persistVolunteers(ctx); err != nil {
		return &v, err
	}
	return &v, nil
}

// DeleteVolunteer removes the volunteer and every assignment that references
// it, returning the number of cascaded assignments. Unknown ids are a no-op.
func (s *Store) DeleteVolunteer(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.assignments)
	s.assignments = slices.DeleteFunc(s.assignments, func(a model.Assignment) bool {
		return a.VolunteerID == id
	})
	cascaded := before - len(s.assignments)

	idx := slices.IndexFunc(s.volunteers, func(v model.Volunteer) bool { return v.ID == id })
	if idx >= 0 {
		s.volunteers = slices.Delete(s.volunteers, idx, idx+1)
	}

	if idx < 0 && cascaded == 0 {
		s.logger.Debug("DeleteVolunteer: id not found, nothing to do", zap.String("id", id))
		return 0, nil
	}

	s.logger.Debug("Volunteer deleted",
		zap.String("id", id),
		zap.Int("cascaded_assignments", cascaded))

	// Assignments go first: if the second write fails a restart sees a
	// volunteer without assignments, never assignments without a volunteer.
	if cascaded > 0 {
		if err := s.persistAssignments(ctx); err != nil {
			return cascaded, err
		}
	}
	if idx >= 0 {
		if err := s.persistVolunteers(ctx); err != nil {
			return cascaded, err
		}
	}
	return cascaded, nil
}

// SetVolunteerActive flips IsActive; reports false for unknown ids
func (s *Store) SetVolunteerActive(ctx context.Context, id string, active bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.volunteers, func(v model.Volunteer) bool { return v.ID == id })
	if idx < 0 {
		return false, nil
	}
	if s.volunteers[idx].IsActive == active {
		return true, nil
	}

	s.volunteers[idx].IsActive = active
	s.logger.Debug("Volunteer active flag changed", zap.String("id", id), zap.Bool("active", active))
	return true, s.persistVolunteers(ctx)
}

// ManagerMode returns the persisted management-mode flag
func (s *Store) ManagerMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.managerMode
}

// SetManagerMode updates and persists the management-mode flag
func (s *Store) SetManagerMode(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.managerMode = on
	if err := s.kv.Set(ctx, db.KeyManagerMode, strconv.FormatBool(on)); err != nil {
		s.logger.Error("Failed to persist manager mode", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Catalog returns the room catalog the store was built with
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Snapshot returns a copy of the current state for read-only queries
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Volunteers:  slices.Clone(s.volunteers),
		Assignments: slices.Clone(s.assignments),
		Catalog:     s.catalog,
	}
}

func (s *Store) persistVolunteers(ctx context.Context) error {
	return s.persist(ctx, db.KeyVolunteers, s.volunteers)
}

func (s *Store) persistAssignments(ctx context.Context) error {
	return s.persist(ctx, db.KeyAssignments, s.assignments)
}

func (s *Store) persist(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", ErrPersist, key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.Error("Failed to persist state", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
