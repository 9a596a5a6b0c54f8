package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// PublicSentinel is the search term that selects public profiles.
	PublicSentinel = "public:true"
	// LocalIDPrefix marks ids minted by the offline client cache.
	LocalIDPrefix = "local_"
)

var (
	ErrMissingID   = errors.New("missing id")
	ErrInvalidID   = errors.New("invalid id")
	ErrLocalID     = errors.New("local id")
	ErrNotFound    = errors.New("profile not found")
	ErrUnavailable = errors.New("store unavailable")
)

// Query selects a newest-first list of profiles.
type Query struct {
	// Search is either PublicSentinel or a literal, case-insensitive term.
	Search string
	Limit  int
}

// ProfileStore is the document collection behind the API. Every method is a
// single-document atomic operation, except List and Each which read.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Profile, error)
	List(ctx context.Context, q Query) ([]models.Profile, error)
	Update(ctx context.Context, id primitive.ObjectID, fields models.Fields, updatedAt time.Time) (*models.Profile, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Each streams every profile newest-first without the page cap.
	Each(ctx context.Context, fn func(*models.Profile) error) error
	Ping(ctx context.Context) error
}

// ParseID validates a client-supplied identifier.
func ParseID(raw string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return primitive.NilObjectID, ErrMissingID
	}
	if strings.HasPrefix(raw, LocalIDPrefix) {
		return primitive.NilObjectID, ErrLocalID
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// Matches reports whether p is selected by the search term.
func Matches(p *models.Profile, search string) bool {
	if search == "" {
		return true
	}
	if search == PublicSentinel {
		return p.IsPublic()
	}
	term := strings.ToLower(search)
	for _, field := range models.SearchFields {
		if strings.Contains(strings.ToLower(p.TextField(field)), term) {
			return true
		}
	}
	return false
}

var (
	_ ProfileStore = (*MongoStore)(nil)
	_ ProfileStore = (*MemoryStore)(nil)
)
