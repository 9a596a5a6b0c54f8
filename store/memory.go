package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process ProfileStore for local runs and tests.
// It follows the same matching and ordering rules as MongoStore.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]*models.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[primitive.ObjectID]*models.Profile)}
}

func (s *MemoryStore) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	doc := p.Clone()
	doc.ID = primitive.NewObjectID()

	s.mu.Lock()
	s.profiles[doc.ID] = doc
	s.mu.Unlock()
	return doc.Clone(), nil
}

func (s *MemoryStore) Get(_ context.Context, id primitive.ObjectID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) List(_ context.Context, q Query) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := []models.Profile{}
	for _, p := range s.sorted() {
		if !Matches(p, q.Search) {
			continue
		}
		profiles = append(profiles, *p.Clone())
		if q.Limit > 0 && len(profiles) == q.Limit {
			break
		}
	}
	return profiles, nil
}

func (s *MemoryStore) Update(_ context.Context, id primitive.ObjectID, fields models.Fields, updatedAt time.Time) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	fields.ApplyTo(p)
	p.UpdatedAt = &updatedAt
	return p.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *MemoryStore) Each(ctx context.Context, fn func(*models.Profile) error) error {
	s.mu.RLock()
	snapshot := s.sorted()
	for i, p := range snapshot {
		snapshot[i] = p.Clone()
	}
	s.mu.RUnlock()

	for _, p := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// sorted returns the stored profiles newest-first. Callers hold the lock.
func (s *MemoryStore) sorted() []*models.Profile {
	out := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out
}
