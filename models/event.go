package models

import "time"

const (
	EventSourceForm     = "form"
	EventSourceDialogue = "dialogue"
)

// Event is a community event as stored in the events collection.
type Event struct {
	ID                   string    `json:"id" bson:"id" firestore:"-"`
	Title                string    `json:"title" bson:"title" firestore:"title"`
	Description          string    `json:"description" bson:"description" firestore:"description"`
	Date                 string    `json:"date" bson:"date" firestore:"date"` // YYYY-MM-DD or M/D/YYYY
	Time                 string    `json:"time" bson:"time" firestore:"time"` // display range, "10:00 AM - 12:00 PM"
	StartTime            string    `json:"startTime" bson:"startTime" firestore:"startTime"`
	EndTime              string    `json:"endTime" bson:"endTime" firestore:"endTime"`
	Location             string    `json:"location" bson:"location" firestore:"location"`
	Room                 string    `json:"room,omitempty" bson:"room,omitempty" firestore:"room,omitempty"`
	Category             string    `json:"category" bson:"category" firestore:"category"`
	Tags                 []string  `json:"tags" bson:"tags" firestore:"tags"`
	ImageURL             string    `json:"imageURL" bson:"imageURL" firestore:"imageURL"`
	IsPublic             bool      `json:"isPublic" bson:"isPublic" firestore:"isPublic"`
	RequiresRegistration bool      `json:"requiresRegistration" bson:"requiresRegistration" firestore:"requiresRegistration"`
	AIOptimization       bool      `json:"aiOptimization" bson:"aiOptimization" firestore:"aiOptimization"`
	Featured             bool      `json:"featured" bson:"featured" firestore:"featured"`
	Capacity             int       `json:"capacity,omitempty" bson:"capacity,omitempty" firestore:"capacity,omitempty"` // 0 means unlimited
	HostID               string    `json:"hostId" bson:"hostId" firestore:"hostId"`
	HostName             string    `json:"hostName" bson:"hostName" firestore:"hostName"`
	HostPhotoURL         string    `json:"hostPhotoURL" bson:"hostPhotoURL" firestore:"hostPhotoURL"`
	AttendeeCount        int       `json:"attendeeCount" bson:"attendeeCount" firestore:"attendeeCount"`
	AppliedSuggestions   []string  `json:"appliedSuggestions,omitempty" bson:"appliedSuggestions,omitempty" firestore:"appliedSuggestions,omitempty"`
	Source               string    `json:"source" bson:"source" firestore:"source"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

// EventInput is the form payload for creating or editing an event.
type EventInput struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"startTime"`
	EndTime              string   `json:"endTime"`
	Location             string   `json:"location"`
	Category             string   `json:"category"`
	Tags                 []string `json:"tags"`
	Capacity             int      `json:"capacity"`
	IsPublic             *bool    `json:"isPublic,omitempty"`
	RequiresRegistration bool     `json:"requiresRegistration"`
	AIOptimization       *bool    `json:"aiOptimization,omitempty"`
}

// EventFilter narrows an event listing.
type EventFilter struct {
	Featured       bool
	Tags           []string
	Search         string
	UpcomingDays   int // 0 disables the window
	MatchThreshold int // 0..100, applied against Interests
	Interests      []string
	Limit          int
}

// Attendee is a document in events/{id}/attendees.
type Attendee struct {
	EventID   string    `json:"eventId,omitempty" bson:"eventId" firestore:"-"`
	UserID    string    `json:"userId" bson:"userId" firestore:"userId"`
	Name      string    `json:"name" bson:"name" firestore:"name"`
	Email     string    `json:"email" bson:"email" firestore:"email"`
	PhotoURL  string    `json:"photoURL" bson:"photoURL" firestore:"photoURL"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp" firestore:"timestamp"`
}

// AttendeeProfile joins an attendee record with the member profile.
type AttendeeProfile struct {
	Attendee
	FieldOfStudy   string   `json:"fieldOfStudy,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	AttendedEvents int      `json:"attendedEvents"`
}

// ScoredEvent pairs an event with the viewer's interest match.
type ScoredEvent struct {
	Event
	MatchScore int `json:"matchScore"`
}
