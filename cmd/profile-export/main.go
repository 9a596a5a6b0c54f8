package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/raushankrgupta/music-profile-api/config"
	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/raushankrgupta/music-profile-api/store"
	"github.com/raushankrgupta/music-profile-api/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var prefix string

var rootCmd = &cobra.Command{
	Use:   "profile-export",
	Short: "Upload a JSON snapshot of every profile to S3",
	Long: `Stream the whole profile collection, newest first and without the page
cap, into a JSON array and upload it to AWS_BUCKET_NAME as
<prefix>/<timestamp>.json.`,
	RunE: runExport,
}

func init() {
	rootCmd.Flags().StringVar(&prefix, "prefix", "snapshots", "Object key prefix inside the bucket")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	uploader, err := utils.NewSnapshotUploader(ctx, config.AWSRegion, config.AWSBucketName)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 uploader: %w", err)
	}

	profileStore := store.NewMongoStore(store.MongoConfig{
		URI:            config.MongoURI,
		Database:       config.MongoDB,
		Collection:     config.MongoColl,
		ConnectTimeout: config.RequestTimeout,
	})
	defer profileStore.Disconnect(context.Background())

	var buf bytes.Buffer
	n, err := writeSnapshot(ctx, profileStore, &buf)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}

	key, err := uploader.Upload(ctx, &buf, snapshotKey(prefix, time.Now()), "application/json")
	if err != nil {
		return err
	}
	log.Info().Int("profiles", n).Str("key", key).Msg("Snapshot uploaded")
	return nil
}

func snapshotKey(prefix string, at time.Time) string {
	return path.Join(prefix, at.UTC().Format("20060102T150405Z")+".json")
}

// writeSnapshot streams every stored profile into w as a JSON array and
// returns how many were written. No page cap applies.
func writeSnapshot(ctx context.Context, st store.ProfileStore, w io.Writer) (int, error) {
	if _, err := io.WriteString(w, "["); err != nil {
		return 0, err
	}

	n := 0
	err := st.Each(ctx, func(p *models.Profile) error {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding profile %s: %w", p.ID.Hex(), err)
		}
		if n > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}

	_, err = io.WriteString(w, "]")
	return n, err
}
