package movies

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateTitle    = errors.New("a movie with that title already exists")
	ErrInvalidReference  = errors.New("referenced genre or person does not exist")
	QueryTimeoutDuration = time.Second * 5
)

// Validation enums carried over from the catalog schema.
var (
	Statuses = []string{"Released", "Upcoming", "In Production"}
	Types    = []string{"Movie", "Series"}
)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ActorID int64  `json:"actor_id"`
	Name    string `json:"name"`
	Profile string `json:"profile,omitempty"`
	Role    string `json:"role"`
}

type Movie struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Poster        string       `json:"poster"`
	Trailer       string       `json:"trailer,omitempty"`
	Tags          []string     `json:"tags"`
	Genres        []Genre      `json:"genres"`
	Director      *Person      `json:"director,omitempty"`
	Writers       []Person     `json:"writers"`
	Casts         []CastMember `json:"casts"`
	Language      string       `json:"language"`
	Status        string       `json:"status"`
	Type          string       `json:"type"`
	ReleaseDate   time.Time    `json:"release_date"`
	AverageRating float64      `json:"average_rating"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// IDs used on insert; the joined slices above are filled on reads.
	GenreIDs  []int64 `json:"-"`
	WriterIDs []int64 `json:"-"`
}

// Summary is the listing shape: no cast/writer joins, genre names only.
type Summary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Poster        string    `json:"poster"`
	Genres        []string  `json:"genres"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	ReleaseDate   time.Time `json:"release_date"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// Option is the shape consumed by select-style pickers on the client.
type Option struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
	Image string `json:"image"`
}
