package models

import "time"

// User is a community member profile. Identity (email/password) lives with the auth provider.
type User struct {
	ID             string    `json:"id" bson:"id" firestore:"-"`
	Name           string    `json:"name" bson:"name" firestore:"name"`
	Email          string    `json:"email" bson:"email" firestore:"email"`
	PhotoURL       string    `json:"photoURL" bson:"photoURL" firestore:"photoURL"`
	Bio            string    `json:"bio" bson:"bio" firestore:"bio"`
	FieldOfStudy   string    `json:"fieldOfStudy" bson:"fieldOfStudy" firestore:"fieldOfStudy"`
	Organization   string    `json:"organization" bson:"organization" firestore:"organization"`
	Interests      []string  `json:"interests" bson:"interests" firestore:"interests"`
	Role           string    `json:"role" bson:"role" firestore:"role"`                               // "User" unless promoted
	AttendedEvents []string  `json:"attendedEvents" bson:"attendedEvents" firestore:"attendedEvents"` // event ids
	RsvpedEvents   []string  `json:"rsvpedEvents" bson:"rsvpedEvents" firestore:"rsvpedEvents"`       // event ids
	FCMToken       string    `json:"-" bson:"fcmToken,omitempty" firestore:"fcmToken,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
	LastLogin      time.Time `json:"lastLogin" bson:"lastLogin" firestore:"lastLogin"`
}

// ProfileUpdate carries the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	FieldOfStudy *string  `json:"fieldOfStudy,omitempty"`
	Organization *string  `json:"organization,omitempty"`
	Interests    []string `json:"interests,omitempty"`
}

// AuthSession is returned on a successful sign-in.
type AuthSession struct {
	UserID    string `json:"id"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// Credential is a locally stored password hash (local auth mode only).
type Credential struct {
	UserID       string    `bson:"userId"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}
