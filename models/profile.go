package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is a user's event/music preference record.
// Fields not known to the server are kept in Extra and persisted verbatim.
// Text fields are always written, so a submitted "" is stored as "".
type Profile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	EventName       string             `bson:"eventName" json:"eventName"`
	MusicPalette    string             `bson:"musicPalette" json:"musicPalette"`
	VibesWanted     string             `bson:"vibesWanted" json:"vibesWanted"`
	Mood            string             `bson:"mood" json:"mood"`
	SuggestedShows  string             `bson:"suggestedShows" json:"suggestedShows"`
	SuggestedAreas  string             `bson:"suggestedAreas" json:"suggestedAreas"`
	SuggestedDrinks string             `bson:"suggestedDrinks" json:"suggestedDrinks"`
	SuggestedFoods  string             `bson:"suggestedFoods" json:"suggestedFoods"`
	Intensity       *int               `bson:"intensity,omitempty" json:"intensity,omitempty"`   // 1-10
	CrowdLevel      *int               `bson:"crowdLevel,omitempty" json:"crowdLevel,omitempty"` // 1-10
	Public          *bool              `bson:"public,omitempty" json:"public,omitempty"`
	Genre           string             `bson:"genre" json:"genre"`
	Vibes           string             `bson:"vibes" json:"vibes"`
	Crowd           string             `bson:"crowd" json:"crowd"`
	Experience      string             `bson:"experience" json:"experience"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`

	Extra map[string]interface{} `bson:",inline" json:"-"`
}

// SearchFields are the text fields matched by a free-text search.
var SearchFields = []string{"name", "eventName", "musicPalette", "vibesWanted", "mood"}

// TextField returns the value of a core text field by its wire name.
func (p *Profile) TextField(field string) string {
	if ptr := p.textField(field); ptr != nil {
		return *ptr
	}
	return ""
}

func (p *Profile) textField(field string) *string {
	switch field {
	case "name":
		return &p.Name
	case "eventName":
		return &p.EventName
	case "musicPalette":
		return &p.MusicPalette
	case "vibesWanted":
		return &p.VibesWanted
	case "mood":
		return &p.Mood
	case "suggestedShows":
		return &p.SuggestedShows
	case "suggestedAreas":
		return &p.SuggestedAreas
	case "suggestedDrinks":
		return &p.SuggestedDrinks
	case "suggestedFoods":
		return &p.SuggestedFoods
	case "genre":
		return &p.Genre
	case "vibes":
		return &p.Vibes
	case "crowd":
		return &p.Crowd
	case "experience":
		return &p.Experience
	}
	return nil
}

// IsPublic reports whether the profile is flagged public.
func (p *Profile) IsPublic() bool {
	return p.Public != nil && *p.Public
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	c := *p
	if p.Intensity != nil {
		v := *p.Intensity
		c.Intensity = &v
	}
	if p.CrowdLevel != nil {
		v := *p.CrowdLevel
		c.CrowdLevel = &v
	}
	if p.Public != nil {
		v := *p.Public
		c.Public = &v
	}
	if p.UpdatedAt != nil {
		v := *p.UpdatedAt
		c.UpdatedAt = &v
	}
	if p.Extra != nil {
		c.Extra = make(map[string]interface{}, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// profileAlias drops the JSON methods so the core fields encode normally.
type profileAlias Profile

// MarshalJSON flattens Extra into the top-level object.
func (p Profile) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(profileAlias(p))
	if err != nil || len(p.Extra) == 0 {
		return base, err
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, reserved := merged[k]; reserved || isCoreField(k) {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads core fields and collects every other key into Extra.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var alias profileAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Profile(alias)
	p.Extra = nil
	for k, v := range raw {
		if isCoreField(k) {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]interface{})
		}
		p.Extra[k] = v
	}
	return nil
}
