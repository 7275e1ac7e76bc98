package store

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wejdan/movies-server/internal/domain/actors"
	"github.com/wejdan/movies-server/internal/domain/genres"
	"github.com/wejdan/movies-server/internal/domain/movies"
	"github.com/wejdan/movies-server/internal/domain/reviews"
	"github.com/wejdan/movies-server/internal/domain/users"
)

// Storage bundles the per-entity repositories behind their interfaces
// so handlers depend on behavior, not on pgx.
type Storage struct {
	Users   users.Store
	Movies  movies.Store
	Actors  actors.Store
	Genres  genres.Store
	Reviews reviews.Store
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:   users.NewRepository(db),
		Movies:  movies.NewRepository(db),
		Actors:  actors.NewRepository(db),
		Genres:  genres.NewRepository(db),
		Reviews: reviews.NewRepository(db),
	}
}
