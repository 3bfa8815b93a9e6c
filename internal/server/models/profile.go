package models

import "time"

// Profile is the public face of a user: a unique username plus optional bio
// and picture.
type Profile struct {
	ID                string
	UserID            string
	Username          string
	Bio               string
	ProfilePictureURL string
	CreatedAt         time.Time
}
