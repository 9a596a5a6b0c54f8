package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig locates the profile collection.
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// MongoStore keeps profiles in a MongoDB collection. The client is opened
// lazily on first use; concurrent callers share a single connect attempt.
type MongoStore struct {
	cfg MongoConfig

	mu         sync.Mutex
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(cfg MongoConfig) *MongoStore {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return &MongoStore{cfg: cfg}
}

// Connect opens and pings the client unless it is already connected.
// A failed attempt is not remembered, so the next call tries again.
func (s *MongoStore) Connect(ctx context.Context) error {
	_, err := s.coll(ctx)
	return err
}

func (s *MongoStore) coll(ctx context.Context) (*mongo.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collection != nil {
		return s.collection, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %v: %w", err, ErrUnavailable)
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %v: %w", err, ErrUnavailable)
	}

	s.client = client
	s.collection = client.Database(s.cfg.Database).Collection(s.cfg.Collection)
	log.Info().Str("database", s.cfg.Database).Str("collection", s.cfg.Collection).Msg("Connected to MongoDB")
	return s.collection, nil
}

// Disconnect closes the client if one was opened.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client, s.collection = nil, nil
	return err
}

// EnsureIndexes creates the index backing the newest-first listing.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	coll, err := s.coll(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    newestFirst,
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return s.Connect(ctx)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %v: %w", err, ErrUnavailable)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}

	doc := p.Clone()
	doc.ID = primitive.NewObjectID()
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", classify(err))
	}
	return doc, nil
}

func (s *MongoStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to find profile %s: %w", id.Hex(), classify(err))
	}
	return &p, nil
}

func (s *MongoStore) List(ctx context.Context, q Query) ([]models.Profile, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(newestFirst)
	if q.Limit > 0 {
		findOptions.SetLimit(int64(q.Limit))
	}

	cursor, err := coll.Find(ctx, BuildFilter(q.Search), findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", classify(err))
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", classify(err))
	}
	return profiles, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, fields models.Fields, updatedAt time.Time) (*models.Profile, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": setDocument(fields, updatedAt)}

	var updated models.Profile
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile %s: %w", id.Hex(), classify(err))
	}
	return &updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := s.coll(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id.Hex(), classify(err))
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Each(ctx context.Context, fn func(*models.Profile) error) error {
	coll, err := s.coll(ctx)
	if err != nil {
		return err
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return fmt.Errorf("failed to scan profiles: %w", classify(err))
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var p models.Profile
		if err := cursor.Decode(&p); err != nil {
			return fmt.Errorf("failed to decode profile: %w", err)
		}
		if err := fn(&p); err != nil {
			return err
		}
	}
	return classify(cursor.Err())
}

// classify maps driver errors onto the store's sentinel errors.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%v: %w", err, ErrUnavailable)
	}
	return err
}
