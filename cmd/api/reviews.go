package main

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wejdan/movies-server/internal/domain/movies"
	"github.com/wejdan/movies-server/internal/domain/reviews"
)

type reviewPayload struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// createReviewHandler godoc
//
//	@Summary		Submit a review
//	@Description	One review per user per movie. The movie's average rating is refreshed right after.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Param			payload	body		reviewPayload				true	"Rating (0-10) and comment"
//	@Success		201		{object}	reviews.Review				"Review created"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Unknown movie"
//	@Failure		409		{object}	ErrorBadRequestResponse		"Already reviewed"
//	@Failure		422		{object}	ErrorBadRequestResponse		"Invalid rating or comment"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/movies/{movieID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	review, err := app.reviews.Submit(r.Context(), user.ID, movieID, payload.Rating, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrRatingOutOfRange), errors.Is(err, reviews.ErrEmptyComment):
			app.unprocessableEntityResponse(w, r, err)
		case errors.Is(err, reviews.ErrMovieNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, reviews.ErrDuplicate):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMovieReviewsHandler godoc
//
//	@Summary		List reviews for a movie
//	@Description	Reviews with reviewer names, plus the count and the rounded average.
//	@Tags			reviews
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Success		200		{object}	map[string]any				"Reviews and stats"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Unknown movie"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/{movieID}/reviews [get]
func (app *application) listMovieReviewsHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	ctx := r.Context()

	title, err := app.store.Movies.Title(ctx, movieID)
	if err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	results, err := app.reviews.ListForMovie(ctx, movieID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	average, err := app.reviews.AverageOf(ctx, movieID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]any{
		"movie":         title,
		"reviews":       results,
		"total_reviews": len(results),
		"average":       math.Round(average*10) / 10,
	}

	app.jsonResponse(w, http.StatusOK, response)
}

// getOwnReviewHandler godoc
//
//	@Summary		Get own review
//	@Description	Returns the authenticated user's review of this movie, if any.
//	@Tags			reviews
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Success		200		{object}	reviews.Review				"Own review"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"No review yet"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/movies/{movieID}/reviews/mine [get]
func (app *application) getOwnReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	user := getUserFromContext(r)

	review, err := app.reviews.ReviewOf(r.Context(), user.ID, movieID)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMovieAverageHandler godoc
//
//	@Summary		Movie average rating
//	@Description	The materialized average, refreshed after every review write rather than recomputed on read.
//	@Tags			reviews
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Success		200		{object}	map[string]any				"Average rating"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Unknown movie"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/{movieID}/reviews/average [get]
func (app *application) getMovieAverageHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	average, err := app.reviews.AverageOf(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]any{
		"movie_id": movieID,
		"average":  math.Round(average*10) / 10,
	}

	app.jsonResponse(w, http.StatusOK, response)
}

// updateReviewHandler godoc
//
//	@Summary		Update a review
//	@Description	Authors can change their own rating and comment. The movie's average rating is refreshed right after.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			movieID		path		int							true	"Movie ID"
//	@Param			reviewID	path		int							true	"Review ID"
//	@Param			payload		body		reviewPayload				true	"New rating and comment"
//	@Success		200			{object}	reviews.Review				"Review updated"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		422			{object}	ErrorBadRequestResponse		"Invalid rating or comment"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/movies/{movieID}/reviews/{reviewID} [patch]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	review, err := app.reviews.Update(r.Context(), reviewID, user.ID, payload.Rating, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrRatingOutOfRange), errors.Is(err, reviews.ErrEmptyComment):
			app.unprocessableEntityResponse(w, r, err)
		case errors.Is(err, reviews.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Description	Authors can delete their own review, admins anyone's. The movie's average rating is refreshed right after.
//	@Tags			reviews
//	@Produce		json
//	@Param			movieID		path		int							true	"Movie ID"
//	@Param			reviewID	path		int							true	"Review ID"
//	@Success		200			{object}	map[string]string			"Review deleted"
//	@Failure		403			{object}	ErrorBadRequestResponse		"Not the author"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/movies/{movieID}/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	user := getUserFromContext(r)

	if err := app.reviews.Delete(r.Context(), reviewID, user.ID, user.IsAdmin); err != nil {
		switch {
		case errors.Is(err, reviews.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, reviews.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
