package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jaswdr/faker"
	"github.com/raushankrgupta/music-profile-api/config"
	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/raushankrgupta/music-profile-api/store"
	"github.com/raushankrgupta/music-profile-api/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var moods = []string{"Energetic", "Chill", "Euphoric", "Nostalgic", "Dreamy"}

var (
	count int
	seed  int64
)

var rootCmd = &cobra.Command{
	Use:   "profile-seed",
	Short: "Insert fake music profiles into MongoDB",
	Long: `Generate realistic-looking profiles and insert them through the profile store.

Runs with the same MONGO_* environment as the API server. Pass --seed to
get the same profiles on every run.`,
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().IntVar(&count, "count", 20, "Number of profiles to insert")
	rootCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed for reproducible data")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	profileStore := store.NewMongoStore(store.MongoConfig{
		URI:            config.MongoURI,
		Database:       config.MongoDB,
		Collection:     config.MongoColl,
		ConnectTimeout: config.RequestTimeout,
	})
	if err := profileStore.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer profileStore.Disconnect(context.Background())

	inserted := insertFakeProfiles(ctx, profileStore, faker.NewWithSeed(rand.NewSource(seed)), count, time.Now().UTC())
	log.Info().Int("inserted", inserted).Int("requested", count).Int64("seed", seed).Msg("Seeding complete")
	return nil
}

// insertFakeProfiles creates n profiles, spreading createdAt one minute apart
// backwards from base so listings have a stable order. Failures are logged.
func insertFakeProfiles(ctx context.Context, st store.ProfileStore, fake faker.Faker, n int, base time.Time) int {
	base = base.Truncate(time.Millisecond)
	inserted := 0
	for i := 0; i < n; i++ {
		created, err := st.Create(ctx, fakeProfile(fake, base.Add(-time.Duration(i)*time.Minute)))
		if err != nil {
			log.Error().Err(err).Int("index", i).Msg("Failed to insert profile")
			continue
		}
		log.Debug().Str("id", created.ID.Hex()).Str("name", created.Name).Msg("Inserted profile")
		inserted++
	}
	return inserted
}

func fakeProfile(fake faker.Faker, createdAt time.Time) *models.Profile {
	intensity := fake.IntBetween(1, 10)
	crowdLevel := fake.IntBetween(1, 10)
	public := fake.Bool()

	genre := fake.Music().Genre()
	return &models.Profile{
		Name:            fake.Person().FirstName(),
		EventName:       fmt.Sprintf("%s %s Fest", fake.Address().City(), genre),
		MusicPalette:    genre,
		VibesWanted:     moods[fake.IntBetween(0, len(moods)-1)],
		Mood:            moods[fake.IntBetween(0, len(moods)-1)],
		SuggestedDrinks: fake.Beer().Name(),
		SuggestedFoods:  fake.Food().Fruit(),
		Intensity:       &intensity,
		CrowdLevel:      &crowdLevel,
		Public:          &public,
		CreatedAt:       createdAt,
	}
}
