package reviews

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeStore is an in-memory Store enforcing the same invariants the
// reviews table does, including the unique (user_id, movie_id) index.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]*Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{reviews: make(map[int64]*Review)}
}

func (f *fakeStore) Create(_ context.Context, review *Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			return ErrDuplicate
		}
	}

	f.nextID++
	review.ID = f.nextID
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeStore) Update(_ context.Context, review *Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.reviews[review.ID]
	if !ok || existing.UserID != review.UserID {
		return ErrNotFound
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	review.MovieID = existing.MovieID
	return nil
}

func (f *fakeStore) Delete(_ context.Context, reviewID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reviews[reviewID]; !ok {
		return ErrNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, reviewID int64) (*Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *review
	return &clone, nil
}

func (f *fakeStore) GetByUserAndMovie(_ context.Context, userID, movieID int64) (*Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, review := range f.reviews {
		if review.UserID == userID && review.MovieID == movieID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) ListByMovie(_ context.Context, movieID int64) ([]Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Review
	for _, review := range f.reviews {
		if review.MovieID == movieID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (f *fakeStore) AverageForMovie(_ context.Context, movieID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sum float64
	var count int
	for _, review := range f.reviews {
		if review.MovieID == movieID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (f *fakeStore) CountAll(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviews), nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	averages map[int64]float64
	failures int // SetAverageRating fails this many times before succeeding
}

func newFakeCatalog(movieIDs ...int64) *fakeCatalog {
	c := &fakeCatalog{averages: make(map[int64]float64)}
	for _, id := range movieIDs {
		c.averages[id] = 0
	}
	return c
}

func (f *fakeCatalog) Exists(_ context.Context, movieID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.averages[movieID]
	return ok, nil
}

func (f *fakeCatalog) AverageRating(_ context.Context, movieID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	avg, ok := f.averages[movieID]
	if !ok {
		return 0, errors.New("movie not found")
	}
	return avg, nil
}

func (f *fakeCatalog) SetAverageRating(_ context.Context, movieID int64, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("storage unavailable")
	}
	f.averages[movieID] = rating
	return nil
}

func buildService(tb testing.TB, movieIDs ...int64) (*Service, *fakeStore, *fakeCatalog) {
	tb.Helper()
	store := newFakeStore()
	catalog := newFakeCatalog(movieIDs...)
	svc := NewService(store, catalog, zap.NewNop().Sugar())
	return svc, store, catalog
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		comment string
		wantErr error
	}{
		{"lower bound accepted", 0, "fine", nil},
		{"upper bound accepted", 10, "fine", nil},
		{"below range", -0.01, "fine", ErrRatingOutOfRange},
		{"above range", 10.01, "fine", ErrRatingOutOfRange},
		{"empty comment", 5, "", ErrEmptyComment},
		{"whitespace comment", 5, "   ", ErrEmptyComment},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := buildService(t, 1)
			_, err := svc.Submit(context.Background(), int64(i+1), 1, tt.rating, tt.comment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitUnknownMovie(t *testing.T) {
	svc, _, _ := buildService(t, 1)

	_, err := svc.Submit(context.Background(), 1, 999, 5, "good")
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("Submit() error = %v, want ErrMovieNotFound", err)
	}
}

func TestSubmitDuplicateConflict(t *testing.T) {
	svc, _, _ := buildService(t, 1)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, 1, 7, "first"); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := svc.Submit(ctx, 1, 1, 9, "second")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second submit error = %v, want ErrDuplicate", err)
	}
}

// The full lifecycle from the catalog's point of view: submissions,
// an update and a deletion, with the materialized average tracking the
// arithmetic mean at every step.
func TestAverageFollowsReviewLifecycle(t *testing.T) {
	svc, _, _ := buildService(t, 1)
	ctx := context.Background()

	avg, err := svc.AverageOf(ctx, 1)
	if err != nil || !almostEqual(avg, 0) {
		t.Fatalf("initial average = %v (err %v), want 0", avg, err)
	}

	reviewA, err := svc.Submit(ctx, 1, 1, 8, "great")
	if err != nil {
		t.Fatalf("user A submit: %v", err)
	}
	if avg, _ := svc.AverageOf(ctx, 1); !almostEqual(avg, 8) {
		t.Fatalf("average after first review = %v, want 8", avg)
	}

	reviewB, err := svc.Submit(ctx, 2, 1, 4, "okay")
	if err != nil {
		t.Fatalf("user B submit: %v", err)
	}
	if avg, _ := svc.AverageOf(ctx, 1); !almostEqual(avg, 6) {
		t.Fatalf("average after second review = %v, want 6", avg)
	}

	if _, err := svc.Update(ctx, reviewA.ID, 1, 2, "changed my mind"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if avg, _ := svc.AverageOf(ctx, 1); !almostEqual(avg, 3) {
		t.Fatalf("average after update = %v, want 3", avg)
	}

	if err := svc.Delete(ctx, reviewB.ID, 99, true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if avg, _ := svc.AverageOf(ctx, 1); !almostEqual(avg, 2) {
		t.Fatalf("average after delete = %v, want 2", avg)
	}

	if err := svc.Delete(ctx, reviewA.ID, 1, false); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if avg, _ := svc.AverageOf(ctx, 1); !almostEqual(avg, 0) {
		t.Fatalf("average with no reviews = %v, want 0", avg)
	}
}

func TestUpdateSomeoneElsesReviewReadsAsNotFound(t *testing.T) {
	svc, _, _ := buildService(t, 1)
	ctx := context.Background()

	review, err := svc.Submit(ctx, 1, 1, 6, "mine")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = svc.Update(ctx, review.ID, 2, 9, "not mine")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update error = %v, want ErrNotFound", err)
	}

	_, err = svc.Update(ctx, review.ID+100, 1, 9, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update of missing review error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAuthorization(t *testing.T) {
	svc, _, _ := buildService(t, 1)
	ctx := context.Background()

	review, err := svc.Submit(ctx, 1, 1, 6, "mine")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Delete(ctx, review.ID, 2, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner delete error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(ctx, review.ID, 2, true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	if err := svc.Delete(ctx, review.ID, 2, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete of deleted review error = %v, want ErrNotFound", err)
	}
}

func TestReviewOfIsIdempotent(t *testing.T) {
	svc, _, _ := buildService(t, 1)
	ctx := context.Background()

	if _, err := svc.ReviewOf(ctx, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReviewOf with no review error = %v, want ErrNotFound", err)
	}

	submitted, err := svc.Submit(ctx, 1, 1, 7, "solid")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	first, err := svc.ReviewOf(ctx, 1, 1)
	if err != nil {
		t.Fatalf("first ReviewOf: %v", err)
	}
	second, err := svc.ReviewOf(ctx, 1, 1)
	if err != nil {
		t.Fatalf("second ReviewOf: %v", err)
	}

	if first.ID != submitted.ID || second.ID != submitted.ID ||
		first.Rating != second.Rating || first.Comment != second.Comment {
		t.Fatalf("ReviewOf not idempotent: first %+v, second %+v", first, second)
	}
}

// Two concurrent submissions for the same (user, movie) pair must
// never both succeed; the storage-level constraint, not a
// check-then-insert, closes the window.
func TestConcurrentDuplicateSubmissions(t *testing.T) {
	svc, store, _ := buildService(t, 1)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(ctx, 1, 1, 5, "race")
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDuplicate):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("%d submissions succeeded, want exactly 1", succeeded)
	}
	if conflicted != attempts-1 {
		t.Fatalf("%d submissions conflicted, want %d", conflicted, attempts-1)
	}

	if count, _ := store.CountAll(ctx); count != 1 {
		t.Fatalf("store holds %d reviews, want 1", count)
	}
}

// Concurrent writers for the same movie may interleave their
// recomputations, but once the mutations settle the materialized value
// equals the mean over the surviving review set.
func TestConcurrentSubmissionsConverge(t *testing.T) {
	const writers = 16
	svc, store, catalog := buildService(t, 1)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			if _, err := svc.Submit(ctx, user, 1, float64(user%11), "concurrent"); err != nil {
				t.Errorf("submit by user %d: %v", user, err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	// Settle: the final recomputation sees the full review set.
	svc.recompute(ctx, 1)

	want, err := store.AverageForMovie(ctx, 1)
	if err != nil {
		t.Fatalf("average for movie: %v", err)
	}
	got, err := catalog.AverageRating(ctx, 1)
	if err != nil {
		t.Fatalf("catalog average: %v", err)
	}
	if !almostEqual(got, want) {
		t.Fatalf("materialized average = %v, want %v", got, want)
	}
}

// A transient write-back failure must not lose the recomputation; the
// retry lands the fresh value and the review itself is never undone.
func TestRecomputeRetriesTransientFailure(t *testing.T) {
	svc, _, catalog := buildService(t, 1)
	catalog.failures = 1
	ctx := context.Background()

	review, err := svc.Submit(ctx, 1, 1, 9, "keeper")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if review.ID == 0 {
		t.Fatal("review was not persisted")
	}

	if avg, _ := catalog.AverageRating(ctx, 1); !almostEqual(avg, 9) {
		t.Fatalf("average after retry = %v, want 9", avg)
	}
}
