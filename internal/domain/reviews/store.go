package reviews

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, reviewID int64) error
	GetByID(ctx context.Context, reviewID int64) (*Review, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*Review, error)
	ListByMovie(ctx context.Context, movieID int64) ([]Review, error)
	AverageForMovie(ctx context.Context, movieID int64) (float64, error)
	CountAll(ctx context.Context) (int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// Create inserts the review. The duplicate check is the unique index on
// (user_id, movie_id); two concurrent submissions for the same pair can
// never both succeed.
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (movie_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		review.MovieID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicate
			case "23503":
				return ErrMovieNotFound
			}
		}
		return err
	}
	return nil
}

// Update mutates rating and comment of the caller's own review; a
// review owned by someone else reads as not found.
func (r *Repository) Update(ctx context.Context, review *Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING movie_id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		review.Rating,
		review.Comment,
		review.ID,
		review.UserID,
	).Scan(&review.MovieID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	review := &Review{}
	err := r.db.QueryRow(ctx, `
		SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`, reviewID).Scan(
		&review.ID,
		&review.MovieID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (r *Repository) GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	review := &Review{}
	err := r.db.QueryRow(ctx, `
		SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID).Scan(
		&review.ID,
		&review.MovieID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (r *Repository) ListByMovie(ctx context.Context, movieID int64) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.movie_id, rv.user_id, rv.rating, rv.comment,
		       rv.created_at, rv.updated_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.movie_id = $1
		ORDER BY rv.created_at DESC
	`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.MovieID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.UserName,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *Repository) AverageForMovie(ctx context.Context, movieID int64) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var average float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE movie_id = $1
	`, movieID).Scan(&average)
	return average, err
}

func (r *Repository) CountAll(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count)
	return count, err
}
