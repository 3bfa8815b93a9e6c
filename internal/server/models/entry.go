package models

import "time"

// Entry is a single diary post.
type Entry struct {
	ID     string
	UserID string
	// Content is the published text, anonymized when IsAnonymized is set.
	Content string
	// OriginalContent holds the text before anonymization. Empty unless
	// IsAnonymized is set, and only ever shown to the owner.
	OriginalContent string
	IsPublic        bool
	IsAnonymized    bool
	CreatedAt       time.Time

	// Username is filled on reads from the author's profile.
	Username string
}
