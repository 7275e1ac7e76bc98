package main

import (
	"net/http"
)

// appStatsHandler godoc
//
//	@Summary		App-wide counters
//	@Description	Totals for the admin dashboard: users, movies and reviews.
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	map[string]int				"Counters"
//	@Failure		403	{object}	ErrorBadRequestResponse		"Admin only"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/stats [get]
func (app *application) appStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userCount, err := app.store.Users.CountAll(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	movieCount, err := app.store.Movies.CountAll(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	reviewCount, err := app.store.Reviews.CountAll(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]int{
		"total_users":   userCount,
		"total_movies":  movieCount,
		"total_reviews": reviewCount,
	}

	app.jsonResponse(w, http.StatusOK, response)
}

// highestRatedMoviesHandler godoc
//
//	@Summary		Highest rated movies
//	@Description	Movies ordered by their materialized average rating.
//	@Tags			admin
//	@Produce		json
//	@Param			limit	query		int							false	"Number of movies (max 50)"
//	@Success		200		{object}	map[string]any				"Highest rated movies"
//	@Failure		403		{object}	ErrorBadRequestResponse		"Admin only"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/movies/highest-rated [get]
func (app *application) highestRatedMoviesHandler(w http.ResponseWriter, r *http.Request) {
	results, err := app.store.Movies.HighestRated(r.Context(), parseLimit(r, 5))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"movies": results})
}

// recentMoviesHandler godoc
//
//	@Summary		Recently added movies
//	@Description	Latest catalog additions by creation time.
//	@Tags			admin
//	@Produce		json
//	@Param			limit	query		int							false	"Number of movies (max 50)"
//	@Success		200		{object}	map[string]any				"Recent movies"
//	@Failure		403		{object}	ErrorBadRequestResponse		"Admin only"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/movies/recent [get]
func (app *application) recentMoviesHandler(w http.ResponseWriter, r *http.Request) {
	results, err := app.store.Movies.Recent(r.Context(), parseLimit(r, 5))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"movies": results})
}
