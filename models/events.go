package models

import "time"

type ProfileEventType string

const (
	EventProfileCreated ProfileEventType = "profile.created"
	EventProfileUpdated ProfileEventType = "profile.updated"
	EventProfileDeleted ProfileEventType = "profile.deleted"
)

// ProfileEvent is published after a profile mutation succeeds.
type ProfileEvent struct {
	ID         string           `json:"id"`
	EventType  ProfileEventType `json:"eventType"`
	ProfileID  string           `json:"profileId"`
	Profile    *Profile         `json:"profile,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
