package storage

import (
	"time"

	"email-intake/internal/validator"
)

// Submission is one received name/email pair and its validation outcome.
// Records are never changed once stored.
type Submission struct {
	Name    string            `json:"name" yaml:"name"`
	Email   string            `json:"email" yaml:"email"`
	Outcome validator.Outcome `json:"errorMessages" yaml:"-"`

	ReceivedAt time.Time `json:"-" yaml:"received_at"`
}

// submissionRow is the sqlite representation of a Submission.
type submissionRow struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Valid      bool      `db:"valid"`
	Violations string    `db:"violations"`
	ReceivedAt time.Time `db:"received_at"`
}
