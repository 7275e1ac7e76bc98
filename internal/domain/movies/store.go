package movies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wejdan/movies-server/internal/database"
)

type Store interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, movieID int64) (*Movie, error)
	Exists(ctx context.Context, movieID int64) (bool, error)
	Title(ctx context.Context, movieID int64) (string, error)
	List(ctx context.Context, query string, limit, offset int) ([]Summary, int, error)
	ListByGenre(ctx context.Context, genreID int64, limit, offset int) ([]Summary, int, error)
	Featured(ctx context.Context, limit int) ([]Summary, error)
	Similar(ctx context.Context, movieID int64, limit int) ([]Summary, error)
	Search(ctx context.Context, query string, limit int) ([]Option, error)
	DeleteWithReviews(ctx context.Context, movieID int64) error
	AverageRating(ctx context.Context, movieID int64) (float64, error)
	SetAverageRating(ctx context.Context, movieID int64, rating float64) error
	HighestRated(ctx context.Context, limit int) ([]Summary, error)
	Recent(ctx context.Context, limit int) ([]Summary, error)
	CountAll(ctx context.Context) (int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, movie *Movie) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := database.WithTx(r.db, ctx, func(tx pgx.Tx) error {
		var directorID *int64
		if movie.Director != nil {
			directorID = &movie.Director.ID
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO movies (title, description, poster, trailer, tags, director_id,
			                    language, status, type, release_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, average_rating, created_at, updated_at
		`,
			movie.Title,
			movie.Description,
			movie.Poster,
			movie.Trailer,
			movie.Tags,
			directorID,
			movie.Language,
			movie.Status,
			movie.Type,
			movie.ReleaseDate,
		).Scan(&movie.ID, &movie.AverageRating, &movie.CreatedAt, &movie.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateTitle
			}
			return err
		}

		for _, genreID := range movie.GenreIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2)`,
				movie.ID, genreID); err != nil {
				return err
			}
		}

		for _, writerID := range movie.WriterIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO movie_writers (movie_id, actor_id) VALUES ($1, $2)`,
				movie.ID, writerID); err != nil {
				return err
			}
		}

		for _, cast := range movie.Casts {
			if _, err := tx.Exec(ctx,
				`INSERT INTO movie_casts (movie_id, actor_id, role) VALUES ($1, $2, $3)`,
				movie.ID, cast.ActorID, cast.Role); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// A genre, writer, cast member or director ID that does not
		// exist trips a foreign key violation somewhere in the batch.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInvalidReference
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, movieID int64) (*Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	movie := &Movie{}
	var (
		directorID   *int64
		directorName *string
	)

	err := r.db.QueryRow(ctx, `
		SELECT m.id, m.title, m.description, m.poster, COALESCE(m.trailer, ''),
		       m.tags, m.language, m.status, m.type, m.release_date,
		       m.average_rating, m.created_at, m.updated_at,
		       m.director_id, d.name
		FROM movies m
		LEFT JOIN actors d ON d.id = m.director_id
		WHERE m.id = $1
	`, movieID).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Poster,
		&movie.Trailer,
		&movie.Tags,
		&movie.Language,
		&movie.Status,
		&movie.Type,
		&movie.ReleaseDate,
		&movie.AverageRating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&directorID,
		&directorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if directorID != nil && directorName != nil {
		movie.Director = &Person{ID: *directorID, Name: *directorName}
	}

	if movie.Genres, err = r.movieGenres(ctx, movieID); err != nil {
		return nil, err
	}
	if movie.Writers, err = r.movieWriters(ctx, movieID); err != nil {
		return nil, err
	}
	if movie.Casts, err = r.movieCasts(ctx, movieID); err != nil {
		return nil, err
	}

	return movie, nil
}

func (r *Repository) movieGenres(ctx context.Context, movieID int64) ([]Genre, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.id, g.name
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []Genre
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *Repository) movieWriters(ctx context.Context, movieID int64) ([]Person, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name
		FROM movie_writers mw
		JOIN actors a ON a.id = mw.actor_id
		WHERE mw.movie_id = $1
		ORDER BY a.name
	`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var writers []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		writers = append(writers, p)
	}
	return writers, rows.Err()
}

func (r *Repository) movieCasts(ctx context.Context, movieID int64) ([]CastMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.profile, mc.role
		FROM movie_casts mc
		JOIN actors a ON a.id = mc.actor_id
		WHERE mc.movie_id = $1
		ORDER BY a.name
	`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var casts []CastMember
	for rows.Next() {
		var c CastMember
		if err := rows.Scan(&c.ActorID, &c.Name, &c.Profile, &c.Role); err != nil {
			return nil, err
		}
		casts = append(casts, c)
	}
	return casts, rows.Err()
}

func (r *Repository) Exists(ctx context.Context, movieID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
	return exists, err
}

func (r *Repository) Title(ctx context.Context, movieID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var title string
	err := r.db.QueryRow(ctx, `SELECT title FROM movies WHERE id = $1`, movieID).Scan(&title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return title, nil
}

const summaryColumns = `
	m.id, m.title, m.poster,
	COALESCE(ARRAY(
		SELECT g.name FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = m.id
		ORDER BY g.name
	), '{}'),
	m.language, m.status, m.type, m.release_date, m.average_rating, m.created_at
`

func scanSummaries(rows pgx.Rows, withTotal bool) ([]Summary, int, error) {
	defer rows.Close()

	var (
		movies []Summary
		total  int
	)
	for rows.Next() {
		var s Summary
		dest := []any{
			&s.ID, &s.Title, &s.Poster, &s.Genres,
			&s.Language, &s.Status, &s.Type, &s.ReleaseDate, &s.AverageRating, &s.CreatedAt,
		}
		if withTotal {
			dest = append(dest, &total)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		movies = append(movies, s)
	}
	return movies, total, rows.Err()
}

func (r *Repository) List(ctx context.Context, query string, limit, offset int) ([]Summary, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+summaryColumns+`, COUNT(*) OVER() AS total
		FROM movies m
		WHERE ($1 = '' OR m.title ILIKE '%' || $1 || '%')
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return scanSummaries(rows, true)
}

func (r *Repository) ListByGenre(ctx context.Context, genreID int64, limit, offset int) ([]Summary, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+summaryColumns+`, COUNT(*) OVER() AS total
		FROM movies m
		WHERE EXISTS (
			SELECT 1 FROM movie_genres mg
			WHERE mg.movie_id = m.id AND mg.genre_id = $1
		)
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3
	`, genreID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return scanSummaries(rows, true)
}

func (r *Repository) Featured(ctx context.Context, limit int) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+summaryColumns+`
		FROM movies m
		WHERE m.status = 'Released'
		ORDER BY m.average_rating DESC, m.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	movies, _, err := scanSummaries(rows, false)
	return movies, err
}

// Similar scores candidates by overlap with the target movie: shared
// genres, tags, cast members and writers count one each, a shared
// director counts one.
func (r *Repository) Similar(ctx context.Context, movieID int64, limit int) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	exists, err := r.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx, `
		WITH target AS (
			SELECT id, tags, director_id FROM movies WHERE id = $1
		),
		scored AS (
			SELECT m.id,
			       (SELECT COUNT(*) FROM movie_genres a
			        JOIN movie_genres b ON b.genre_id = a.genre_id
			        WHERE a.movie_id = m.id AND b.movie_id = $1)
			     + (SELECT COUNT(*) FROM movie_casts a
			        JOIN movie_casts b ON b.actor_id = a.actor_id
			        WHERE a.movie_id = m.id AND b.movie_id = $1)
			     + (SELECT COUNT(*) FROM movie_writers a
			        JOIN movie_writers b ON b.actor_id = a.actor_id
			        WHERE a.movie_id = m.id AND b.movie_id = $1)
			     + CARDINALITY(ARRAY(
			        SELECT UNNEST(m.tags) INTERSECT SELECT UNNEST(t.tags)))
			     + CASE WHEN m.director_id IS NOT NULL AND m.director_id = t.director_id
			        THEN 1 ELSE 0 END AS score
			FROM movies m, target t
			WHERE m.id <> $1
		)
		SELECT `+summaryColumns+`
		FROM movies m
		JOIN scored s ON s.id = m.id
		WHERE s.score > 0
		ORDER BY s.score DESC, m.id
		LIMIT $2
	`, movieID, limit)
	if err != nil {
		return nil, err
	}
	movies, _, err := scanSummaries(rows, false)
	return movies, err
}

func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Option, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, title, poster
		FROM movies
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY title
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.Value, &o.Label, &o.Image); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// DeleteWithReviews removes a movie together with its reviews and join
// rows in one transaction; a reader never observes a partial state.
func (r *Repository) DeleteWithReviews(ctx context.Context, movieID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return database.WithTx(r.db, ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE movie_id = $1`, movieID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM movie_writers WHERE movie_id = $1`, movieID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM movie_casts WHERE movie_id = $1`, movieID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, movieID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *Repository) AverageRating(ctx context.Context, movieID int64) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var rating float64
	err := r.db.QueryRow(ctx,
		`SELECT average_rating FROM movies WHERE id = $1`, movieID).Scan(&rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return rating, nil
}

func (r *Repository) SetAverageRating(ctx context.Context, movieID int64, rating float64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`UPDATE movies SET average_rating = $1, updated_at = NOW() WHERE id = $2`, rating, movieID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) HighestRated(ctx context.Context, limit int) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+summaryColumns+`
		FROM movies m
		ORDER BY m.average_rating DESC, m.id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	movies, _, err := scanSummaries(rows, false)
	return movies, err
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+summaryColumns+`
		FROM movies m
		ORDER BY m.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	movies, _, err := scanSummaries(rows, false)
	return movies, err
}

func (r *Repository) CountAll(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count)
	return count, err
}
