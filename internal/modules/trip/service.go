// README: Trip history service; append with eviction, like/dislike, delete.
package trip

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/lo"

	"wayfarer/internal/types"
)

// maxRecords caps the collection after every append; the oldest beyond the
// cap are discarded, never archived.
const maxRecords = 30

var ErrNotFound = errors.New("trip: record not found")

type Service struct {
	mu    sync.Mutex
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Append prepends the record (most-recent-first) and truncates to the cap.
// Called once per completed request/response round, never on re-evaluation.
func (s *Service) Append(ctx context.Context, rec TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	trips = append([]TripRecord{rec}, trips...)
	if len(trips) > maxRecords {
		trips = trips[:maxRecords]
	}
	return s.store.Save(ctx, trips)
}

// SetLiked rewrites the targeted record's flag in place.
func (s *Service) SetLiked(ctx context.Context, id types.ID, liked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	for i := range trips {
		if trips[i].ID == id {
			trips[i].Liked = liked
			return s.store.Save(ctx, trips)
		}
	}
	return ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	kept := lo.Filter(trips, func(t TripRecord, _ int) bool { return t.ID != id })
	if len(kept) == len(trips) {
		return ErrNotFound
	}
	return s.store.Save(ctx, kept)
}

// List returns all records, most recent first.
func (s *Service) List(ctx context.Context) ([]TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// Favourites returns the liked subset, preserving recency order.
func (s *Service) Favourites(ctx context.Context) ([]TripRecord, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(trips, func(t TripRecord, _ int) bool { return t.Liked }), nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].ID == id {
			return &trips[i], nil
		}
	}
	return nil, ErrNotFound
}
