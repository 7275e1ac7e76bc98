package actors

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateName     = errors.New("an actor with that name already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Actor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Profile   string    `json:"profile"`
	About     string    `json:"about"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}
