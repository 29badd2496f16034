package models

import "time"

// Fic statuses as stored and exposed by the moderation workflow.
const (
	FicStatusPending  = "pending"
	FicStatusApproved = "approved"
	FicStatusRejected = "rejected"

	// FicStatusDeleted is a moderation command, not a stored state:
	// setting it removes the fic from the store entirely.
	FicStatusDeleted = "deleted"
)

// Fic is a multi-chapter story submitted by a user.
// New submissions always start in the pending status and become visible
// to readers only after an admin approves them.
type Fic struct {
	// ID is the unique identifier of the fic (UUIDv7).
	ID string `json:"id"`

	// Title is the story title shown in listings and matched by search.
	Title string `json:"title"`

	// Summary is a short author-provided description.
	Summary string `json:"summary"`

	// Chapters holds the story body in order.
	Chapters []Chapter `json:"chapters"`

	// SubmittedBy is the username of the author. Taken from the
	// authenticated identity, never from the request body.
	SubmittedBy string `json:"submitted_by"`

	// Status is one of pending/approved/rejected.
	Status string `json:"status"`

	// Mark is an optional moderator label (e.g. "featured").
	Mark string `json:"mark,omitempty"`

	// AgeRating is the moderator-assigned age rating (e.g. "16+").
	AgeRating string `json:"age_rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chapter is a single chapter of a fic.
type Chapter struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// TableName returns the name of the database table
// associated with the Fic model.
func (f Fic) TableName() string {
	return "fics"
}

// IsValidFicStatus reports whether s is a status an admin may assign
// through the moderation endpoint.
func IsValidFicStatus(s string) bool {
	switch s {
	case FicStatusPending, FicStatusApproved, FicStatusRejected, FicStatusDeleted:
		return true
	}
	return false
}
