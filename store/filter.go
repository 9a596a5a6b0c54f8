package store

import (
	"regexp"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildFilter translates a search term into a Mongo filter. User input is
// escaped so regex metacharacters match literally.
func BuildFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	if search == PublicSentinel {
		return bson.M{"public": true}
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	or := make(bson.A, 0, len(models.SearchFields))
	for _, field := range models.SearchFields {
		or = append(or, bson.M{field: pattern})
	}
	return bson.M{"$or": or}
}

// newestFirst is the list ordering shared by every query.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// setDocument builds the $set body of an update.
func setDocument(fields models.Fields, updatedAt time.Time) bson.M {
	set := bson.M{"updatedAt": updatedAt}
	for k, v := range fields {
		set[k] = v
	}
	return set
}
