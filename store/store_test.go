package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseID(t *testing.T) {
	valid := primitive.NewObjectID()

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrMissingID},
		{"blank", "   ", ErrMissingID},
		{"local", "local_1712345", ErrLocalID},
		{"not hex", "not-an-id", ErrInvalidID},
		{"short hex", "65a1b2", ErrInvalidID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseID(tc.raw)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	id, err := ParseID(" " + valid.Hex() + " ")
	require.NoError(t, err)
	assert.Equal(t, valid, id)
}

func TestBuildFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildFilter(""))
	assert.Equal(t, bson.M{"public": true}, BuildFilter(PublicSentinel))

	f := BuildFilter("a.b*(c)")
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, len(models.SearchFields))
	for i, field := range models.SearchFields {
		clause := or[i].(bson.M)
		re := clause[field].(primitive.Regex)
		assert.Equal(t, `a\.b\*\(c\)`, re.Pattern)
		assert.Equal(t, "i", re.Options)
	}
}

func TestSetDocument(t *testing.T) {
	at := time.Date(2024, 2, 2, 2, 2, 2, 0, time.UTC)
	set := setDocument(models.Fields{"mood": "Chill", "intensity": 4}, at)
	assert.Equal(t, bson.M{"mood": "Chill", "intensity": 4, "updatedAt": at}, set)
}

func TestMatches(t *testing.T) {
	public := true
	p := &models.Profile{Name: "Alice", EventName: "Summer Fest", Mood: "Dreamy", Public: &public}

	assert.True(t, Matches(p, ""))
	assert.True(t, Matches(p, "summer"))
	assert.True(t, Matches(p, "DREAM"))
	assert.True(t, Matches(p, PublicSentinel))
	assert.False(t, Matches(p, "winter"))
	assert.False(t, Matches(&models.Profile{Name: "Bob"}, PublicSentinel))
}

func seed(t *testing.T, s *MemoryStore, profiles ...*models.Profile) []*models.Profile {
	t.Helper()
	out := make([]*models.Profile, 0, len(profiles))
	for _, p := range profiles {
		created, err := s.Create(context.Background(), p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	created := seed(t, s, &models.Profile{Name: "Alice", EventName: "Summer Fest", CreatedAt: base})[0]
	assert.False(t, created.ID.IsZero())

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	// returned copies do not alias stored state
	got.Name = "Mallory"
	again, _ := s.Get(ctx, created.ID)
	assert.Equal(t, "Alice", again.Name)

	updatedAt := base.Add(time.Hour)
	updated, err := s.Update(ctx, created.ID, models.Fields{"mood": "Chill"}, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "Chill", updated.Mood)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, updatedAt, *updated.UpdatedAt)
	assert.Equal(t, base, updated.CreatedAt)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)

	_, err = s.Update(ctx, primitive.NewObjectID(), models.Fields{"mood": "x"}, updatedAt)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListOrderingAndSearch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	public := true

	seed(t, s,
		&models.Profile{Name: "Old", MusicPalette: "Jazz", CreatedAt: base},
		&models.Profile{Name: "Mid", EventName: "Summer Fest", Public: &public, CreatedAt: base.Add(time.Minute)},
		&models.Profile{Name: "New", VibesWanted: "summer nights", CreatedAt: base.Add(2 * time.Minute)},
	)

	all, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"New", "Mid", "Old"}, names(all))

	hits, err := s.List(ctx, Query{Search: "SUMMER"})
	require.NoError(t, err)
	assert.Equal(t, []string{"New", "Mid"}, names(hits))

	pub, err := s.List(ctx, Query{Search: PublicSentinel})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mid"}, names(pub))

	limited, err := s.List(ctx, Query{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"New", "Mid"}, names(limited))

	none, err := s.List(ctx, Query{Search: ".*"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryStoreTieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	created := seed(t, s,
		&models.Profile{Name: "first", CreatedAt: at},
		&models.Profile{Name: "second", CreatedAt: at},
	)

	list, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	wantFirst := created[0]
	if created[1].ID.Hex() > created[0].ID.Hex() {
		wantFirst = created[1]
	}
	assert.Equal(t, wantFirst.ID, list[0].ID)
}

func TestMemoryStoreEach(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seed(t, s, &models.Profile{Name: "p", CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}

	count := 0
	require.NoError(t, s.Each(ctx, func(*models.Profile) error {
		count++
		return nil
	}))
	assert.Equal(t, 5, count)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, s.Each(cancelled, func(*models.Profile) error { return nil }), context.Canceled)
}

func names(ps []models.Profile) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(mongo.ErrNoDocuments), ErrNotFound)
	assert.ErrorIs(t, classify(mongo.ErrClientDisconnected), ErrUnavailable)

	other := errors.New("duplicate key")
	assert.Equal(t, other, classify(other))
}
