package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wejdan/movies-server/internal/domain/movies"
	"github.com/wejdan/movies-server/internal/domain/reviews"
)

// stubReviewStore satisfies reviews.Store for handlers that never
// touch the review table.
type stubReviewStore struct{}

func (stubReviewStore) Create(context.Context, *reviews.Review) error { return nil }
func (stubReviewStore) Update(context.Context, *reviews.Review) error { return reviews.ErrNotFound }
func (stubReviewStore) Delete(context.Context, int64) error           { return reviews.ErrNotFound }
func (stubReviewStore) GetByID(context.Context, int64) (*reviews.Review, error) {
	return nil, reviews.ErrNotFound
}
func (stubReviewStore) GetByUserAndMovie(context.Context, int64, int64) (*reviews.Review, error) {
	return nil, reviews.ErrNotFound
}
func (stubReviewStore) ListByMovie(context.Context, int64) ([]reviews.Review, error) {
	return nil, nil
}
func (stubReviewStore) AverageForMovie(context.Context, int64) (float64, error) { return 0, nil }
func (stubReviewStore) CountAll(context.Context) (int, error)                   { return 0, nil }

// stubCatalog serves materialized averages for a fixed set of movies.
type stubCatalog struct {
	averages map[int64]float64
}

func (c stubCatalog) Exists(_ context.Context, movieID int64) (bool, error) {
	_, ok := c.averages[movieID]
	return ok, nil
}

func (c stubCatalog) AverageRating(_ context.Context, movieID int64) (float64, error) {
	average, ok := c.averages[movieID]
	if !ok {
		return 0, movies.ErrNotFound
	}
	return average, nil
}

func (c stubCatalog) SetAverageRating(_ context.Context, movieID int64, rating float64) error {
	c.averages[movieID] = rating
	return nil
}

func buildAverageRouter(tb testing.TB, averages map[int64]float64) http.Handler {
	tb.Helper()

	logger := zap.NewNop().Sugar()
	app := &application{
		logger:  logger,
		reviews: reviews.NewService(stubReviewStore{}, stubCatalog{averages: averages}, logger),
	}

	r := chi.NewRouter()
	r.Get("/v1/movies/{movieID}/reviews/average", app.getMovieAverageHandler)
	return r
}

func TestGetMovieAverage(t *testing.T) {
	router := buildAverageRouter(t, map[int64]float64{42: 7.46})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"known movie", "/v1/movies/42/reviews/average", http.StatusOK},
		{"unknown movie", "/v1/movies/7/reviews/average", http.StatusNotFound},
		{"bad movie id", "/v1/movies/abc/reviews/average", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetMovieAverageBody(t *testing.T) {
	router := buildAverageRouter(t, map[int64]float64{42: 7.46})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies/42/reviews/average", nil)
	router.ServeHTTP(rec, req)

	var body struct {
		Data struct {
			MovieID int64   `json:"movie_id"`
			Average float64 `json:"average"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Data.MovieID != 42 {
		t.Fatalf("movie_id = %d, want 42", body.Data.MovieID)
	}
	// Rounded to one decimal for the client.
	if body.Data.Average != 7.5 {
		t.Fatalf("average = %v, want 7.5", body.Data.Average)
	}
}
