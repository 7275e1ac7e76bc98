package actors

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, actor *Actor) error
	GetByID(ctx context.Context, actorID int64) (*Actor, error)
	List(ctx context.Context, query string, limit, offset int) ([]Actor, int, error)
	Search(ctx context.Context, query string, limit int) ([]Actor, error)
	Delete(ctx context.Context, actorID int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, actor *Actor) error {
	query := `
		INSERT INTO actors (name, profile, about, gender)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		actor.Name,
		actor.Profile,
		actor.About,
		actor.Gender,
	).Scan(&actor.ID, &actor.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, actorID int64) (*Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	actor := &Actor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, profile, about, gender, created_at
		FROM actors
		WHERE id = $1
	`, actorID).Scan(
		&actor.ID,
		&actor.Name,
		&actor.Profile,
		&actor.About,
		&actor.Gender,
		&actor.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return actor, nil
}

// List returns a page of actors, optionally filtered by a
// case-insensitive name match, along with the total match count.
func (r *Repository) List(ctx context.Context, query string, limit, offset int) ([]Actor, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, profile, about, gender, created_at, COUNT(*) OVER() AS total
		FROM actors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		actors []Actor
		total  int
	)
	for rows.Next() {
		var a Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Profile, &a.About, &a.Gender, &a.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		actors = append(actors, a)
	}
	return actors, total, rows.Err()
}

func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, profile, about, gender, created_at
		FROM actors
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actors []Actor
	for rows.Next() {
		var a Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Profile, &a.About, &a.Gender, &a.CreatedAt); err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, actorID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM actors WHERE id = $1`, actorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
