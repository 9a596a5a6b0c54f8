package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/raushankrgupta/music-profile-api/cache"
	"github.com/raushankrgupta/music-profile-api/events"
	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/raushankrgupta/music-profile-api/recommend"
	"github.com/raushankrgupta/music-profile-api/store"
	"github.com/rs/zerolog/log"
)

// DefaultPageCap bounds every unfiltered or searched listing.
const DefaultPageCap = 100

// ProfileService owns the profile operations. Cache and event delivery are
// best-effort: their failures are logged and never fail the operation.
type ProfileService struct {
	store     store.ProfileStore
	cache     *cache.ProfileCache
	publisher events.Publisher
	suggester recommend.Suggester
	pageCap   int
	now       func() time.Time
}

type Option func(*ProfileService)

func WithCache(c *cache.ProfileCache) Option {
	return func(s *ProfileService) { s.cache = c }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *ProfileService) { s.publisher = p }
}

func WithSuggester(sg recommend.Suggester) Option {
	return func(s *ProfileService) { s.suggester = sg }
}

func WithPageCap(n int) Option {
	return func(s *ProfileService) {
		if n > 0 {
			s.pageCap = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *ProfileService) { s.now = now }
}

func NewProfileService(st store.ProfileStore, opts ...Option) *ProfileService {
	s := &ProfileService{
		store:   st,
		pageCap: DefaultPageCap,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProfileService) PageCap() int { return s.pageCap }

// timestamp matches the millisecond precision of stored BSON dates.
func (s *ProfileService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Create validates and inserts a new profile.
func (s *ProfileService) Create(ctx context.Context, fields models.Fields) (*models.Profile, error) {
	if fields.Name() == "" {
		return nil, &models.PayloadError{Msg: "Missing name"}
	}

	created, err := s.store.Create(ctx, models.NewProfile(fields, s.timestamp()))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventProfileCreated, created.ID.Hex(), created)
	return created, nil
}

// Get looks up one profile by its client-supplied id.
func (s *ProfileService) Get(ctx context.Context, rawID string) (*models.Profile, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	if p, ok := s.cache.Get(ctx, id.Hex()); ok {
		return p, nil
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, p)
	return p, nil
}

// List returns newest-first profiles matching search. limit may lower the
// page cap but never raise it.
func (s *ProfileService) List(ctx context.Context, search string, limit int) ([]models.Profile, error) {
	if !utf8.ValidString(search) {
		return nil, &models.PayloadError{Msg: "Invalid search term"}
	}
	if limit <= 0 || limit > s.pageCap {
		limit = s.pageCap
	}
	return s.store.List(ctx, store.Query{
		Search: strings.TrimSpace(search),
		Limit:  limit,
	})
}

// Update merges fields onto an existing profile and stamps updatedAt.
func (s *ProfileService) Update(ctx context.Context, rawID string, fields models.Fields) (*models.Profile, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if _, ok := fields["name"]; ok && fields.Name() == "" {
		return nil, &models.PayloadError{Msg: "Name cannot be empty"}
	}

	updated, err := s.store.Update(ctx, id, fields, s.timestamp())
	if err != nil {
		return nil, err
	}

	// versioned write, so a read that raced this update cannot win
	s.cache.Set(ctx, updated)
	s.publish(ctx, models.EventProfileUpdated, id.Hex(), updated)
	return updated, nil
}

// Delete removes a profile permanently.
func (s *ProfileService) Delete(ctx context.Context, rawID string) error {
	id, err := store.ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id.Hex())
	s.publish(ctx, models.EventProfileDeleted, id.Hex(), nil)
	return nil
}

// Recommend derives suggestions for a stored profile. AI suggestions are
// appended when a suggester is configured and succeeds.
func (s *ProfileService) Recommend(ctx context.Context, rawID string) (*models.Recommendation, error) {
	p, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	recs := recommend.Rules(p)
	if s.suggester != nil {
		extra, err := s.suggester.Suggest(ctx, p)
		if err != nil {
			log.Warn().Err(err).Str("profile_id", p.ID.Hex()).Msg("AI suggestions unavailable")
		} else {
			recs = append(recs, extra...)
		}
	}

	return &models.Recommendation{
		ProfileID:       p.ID.Hex(),
		Name:            p.Name,
		Recommendations: recs,
	}, nil
}

// Suggestions returns the dashboard catalogue for today.
func (s *ProfileService) Suggestions() models.Suggestions {
	return recommend.Dashboard(s.now())
}

func (s *ProfileService) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("profile store: %w", err)
	}
	return nil
}

func (s *ProfileService) publish(ctx context.Context, eventType models.ProfileEventType, id string, p *models.Profile) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProfileEvent(ctx, events.NewProfileEvent(eventType, id, p)); err != nil {
		log.Warn().Err(err).Str("event_type", string(eventType)).Str("profile_id", id).Msg("failed to publish profile event")
	}
}
