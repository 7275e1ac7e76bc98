package reviews

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicate         = errors.New("a review for this movie already exists")
	ErrMovieNotFound     = errors.New("movie not found")
	ErrForbidden         = errors.New("not allowed to delete this review")
	ErrRatingOutOfRange  = errors.New("rating must be between 0 and 10")
	ErrEmptyComment      = errors.New("comment must not be empty")
	QueryTimeoutDuration = time.Second * 5
)

type Review struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	UserID    int64     `json:"user_id"`
	Rating    float64   `json:"rating"` // 0-10
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined field
	UserName string `json:"user_name,omitempty"`
}
