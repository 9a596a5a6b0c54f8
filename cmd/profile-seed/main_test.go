package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jaswdr/faker"
	"github.com/raushankrgupta/music-profile-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeProfile(t *testing.T) {
	fake := faker.NewWithSeed(rand.NewSource(42))
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		p := fakeProfile(fake, createdAt)

		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.EventName)
		assert.True(t, p.ID.IsZero(), "id is assigned by the store")
		assert.Equal(t, createdAt, p.CreatedAt)
		if assert.NotNil(t, p.Intensity) {
			assert.GreaterOrEqual(t, *p.Intensity, 1)
			assert.LessOrEqual(t, *p.Intensity, 10)
		}
		if assert.NotNil(t, p.CrowdLevel) {
			assert.GreaterOrEqual(t, *p.CrowdLevel, 1)
			assert.LessOrEqual(t, *p.CrowdLevel, 10)
		}
		assert.NotNil(t, p.Public)
		assert.Contains(t, moods, p.Mood)
	}
}

func TestFakeProfileIsReproducible(t *testing.T) {
	createdAt := time.Now().UTC()
	a := fakeProfile(faker.NewWithSeed(rand.NewSource(7)), createdAt)
	b := fakeProfile(faker.NewWithSeed(rand.NewSource(7)), createdAt)
	assert.Equal(t, a, b)
}

func TestInsertFakeProfiles(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	n := insertFakeProfiles(ctx, st, faker.NewWithSeed(rand.NewSource(1)), 4, base)
	assert.Equal(t, 4, n)

	list, err := st.List(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, base, list[0].CreatedAt)
	assert.Equal(t, base.Add(-3*time.Minute), list[3].CreatedAt)
}

func TestSeedFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.Flags().Lookup("count"))
	assert.NotNil(t, rootCmd.Flags().Lookup("seed"))
}
