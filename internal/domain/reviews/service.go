package reviews

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// MovieCatalog is the slice of the movie store the aggregator needs.
// average_rating is owned by this package: nothing else writes it.
type MovieCatalog interface {
	Exists(ctx context.Context, movieID int64) (bool, error)
	AverageRating(ctx context.Context, movieID int64) (float64, error)
	SetAverageRating(ctx context.Context, movieID int64, rating float64) error
}

// Service keeps a movie's average rating consistent with its review
// set. Every mutation is followed by a full recomputation from the
// current reviews; incremental maintenance would drift once reviews
// are updated or deleted.
type Service struct {
	store  Store
	movies MovieCatalog
	logger *zap.SugaredLogger
}

func NewService(store Store, movies MovieCatalog, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:  store,
		movies: movies,
		logger: logger,
	}
}

func validate(rating float64, comment string) error {
	if rating < 0 || rating > 10 {
		return ErrRatingOutOfRange
	}
	if strings.TrimSpace(comment) == "" {
		return ErrEmptyComment
	}
	return nil
}

// Submit inserts a new review and refreshes the movie's average. A
// second review by the same user for the same movie fails with
// ErrDuplicate; the unique index closes the race between concurrent
// duplicate submissions.
func (s *Service) Submit(ctx context.Context, userID, movieID int64, rating float64, comment string) (*Review, error) {
	if err := validate(rating, comment); err != nil {
		return nil, err
	}

	exists, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMovieNotFound
	}

	review := &Review{
		MovieID: movieID,
		UserID:  userID,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	}
	if err := s.store.Create(ctx, review); err != nil {
		return nil, err
	}

	s.recompute(ctx, movieID)
	return review, nil
}

// Update mutates rating and comment of the caller's own review. A
// missing review and someone else's review both come back as
// ErrNotFound; the caller cannot tell the two apart.
func (s *Service) Update(ctx context.Context, reviewID, userID int64, rating float64, comment string) (*Review, error) {
	if err := validate(rating, comment); err != nil {
		return nil, err
	}

	review := &Review{
		ID:      reviewID,
		UserID:  userID,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	}
	if err := s.store.Update(ctx, review); err != nil {
		return nil, err
	}

	s.recompute(ctx, review.MovieID)
	return review, nil
}

// Delete removes a review on behalf of its author or an admin, then
// refreshes the movie's average.
func (s *Service) Delete(ctx context.Context, reviewID, actingUserID int64, isAdmin bool) error {
	review, err := s.store.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != actingUserID && !isAdmin {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.recompute(ctx, review.MovieID)
	return nil
}

// ReviewOf returns the single review the user wrote for the movie, or
// ErrNotFound. Read-only.
func (s *Service) ReviewOf(ctx context.Context, userID, movieID int64) (*Review, error) {
	return s.store.GetByUserAndMovie(ctx, userID, movieID)
}

// AverageOf returns the materialized average. It is not recomputed on
// read; under concurrent writes it converges to the mean of the
// current review set.
func (s *Service) AverageOf(ctx context.Context, movieID int64) (float64, error) {
	return s.movies.AverageRating(ctx, movieID)
}

// ListForMovie returns all reviews for a movie, newest first.
func (s *Service) ListForMovie(ctx context.Context, movieID int64) ([]Review, error) {
	return s.store.ListByMovie(ctx, movieID)
}

// recompute reads the mean over all current reviews for the movie and
// writes it back. The review write itself has already committed, so a
// failure here leaves the average stale, not the review lost; it is
// retried once and logged, never swallowed silently.
func (s *Service) recompute(ctx context.Context, movieID int64) {
	err := s.recomputeOnce(ctx, movieID)
	if err == nil {
		return
	}

	s.logger.Errorw("recompute average failed, retrying", "movie_id", movieID, "error", err)
	if err := s.recomputeOnce(ctx, movieID); err != nil {
		s.logger.Errorw("recompute average failed", "movie_id", movieID, "error", err)
	}
}

func (s *Service) recomputeOnce(ctx context.Context, movieID int64) error {
	average, err := s.store.AverageForMovie(ctx, movieID)
	if err != nil {
		return err
	}
	return s.movies.SetAverageRating(ctx, movieID, average)
}
