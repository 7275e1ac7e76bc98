package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wejdan/movies-server/internal/domain/genres"
	"github.com/wejdan/movies-server/internal/domain/movies"
	"github.com/wejdan/movies-server/internal/params"
)

// listMoviesHandler godoc
//
//	@Summary		List movies
//	@Description	Paginated movie listing, optionally filtered by a title search.
//	@Tags			movies
//	@Produce		json
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size (max 50)"
//	@Param			query	query		string						false	"Title filter"
//	@Success		200		{object}	map[string]any				"Movies plus pagination meta"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies [get]
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())
	query := r.URL.Query().Get("query")

	results, total, err := app.store.Movies.List(r.Context(), query, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	p.ComputeMeta(total)

	response := map[string]any{
		"movies":     results,
		"pagination": p,
	}

	app.jsonResponse(w, http.StatusOK, response)
}

type castEntry struct {
	ActorID int64  `json:"actor_id" validate:"required"`
	Role    string `json:"role" validate:"required,max=100"`
}

// createMovieHandler godoc
//
//	@Summary		Create a movie
//	@Description	Creates a movie from a multipart form. The poster file is stored on Cloudinary; genres, writers and casts are linked by ID.
//	@Tags			movies
//	@Accept			mpfd
//	@Produce		json
//	@Param			title	formData	string						true	"Title"
//	@Param			poster	formData	file						true	"Poster image"
//	@Success		201		{object}	movies.Movie				"Movie created"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		409		{object}	ErrorBadRequestResponse		"Duplicate title"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/movies [post]
func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, errors.New("unable to parse form, size limit is 10MB"))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	language := strings.TrimSpace(r.FormValue("language"))
	status := r.FormValue("status")
	movieType := r.FormValue("type")

	if title == "" || description == "" || language == "" {
		app.badRequestResponse(w, r, errors.New("title, description and language are required"))
		return
	}
	if !slices.Contains(movies.Statuses, status) {
		app.badRequestResponse(w, r, fmt.Errorf("status must be one of %v", movies.Statuses))
		return
	}
	if !slices.Contains(movies.Types, movieType) {
		app.badRequestResponse(w, r, fmt.Errorf("type must be one of %v", movies.Types))
		return
	}

	releaseDate, err := time.Parse("2006-01-02", r.FormValue("release_date"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("release_date must be YYYY-MM-DD"))
		return
	}

	genreIDs, err := parseIDList(r.FormValue("genres"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("genres must be a comma separated list of IDs"))
		return
	}
	writerIDs, err := parseIDList(r.FormValue("writers"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("writers must be a comma separated list of IDs"))
		return
	}

	movie := &movies.Movie{
		Title:       title,
		Description: description,
		Language:    language,
		Status:      status,
		Type:        movieType,
		ReleaseDate: releaseDate,
		Trailer:     strings.TrimSpace(r.FormValue("trailer")),
		GenreIDs:    genreIDs,
		WriterIDs:   writerIDs,
	}

	if tags := strings.TrimSpace(r.FormValue("tags")); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				movie.Tags = append(movie.Tags, tag)
			}
		}
	}

	if directorStr := r.FormValue("director"); directorStr != "" {
		directorID, err := strconv.ParseInt(directorStr, 10, 64)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("director must be an actor ID"))
			return
		}
		movie.Director = &movies.Person{ID: directorID}
	}

	if castsStr := r.FormValue("casts"); castsStr != "" {
		var entries []castEntry
		if err := json.Unmarshal([]byte(castsStr), &entries); err != nil {
			app.badRequestResponse(w, r, errors.New("casts must be a JSON array of {actor_id, role}"))
			return
		}
		for _, entry := range entries {
			movie.Casts = append(movie.Casts, movies.CastMember{
				ActorID: entry.ActorID,
				Role:    entry.Role,
			})
		}
	}

	file, _, err := r.FormFile("poster")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("poster file is required"))
		return
	}
	defer file.Close()

	posterURL, err := app.uploadToCloudinary(file, "posters", posterPublicID(title))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	movie.Poster = posterURL

	if err := app.store.Movies.Create(r.Context(), movie); err != nil {
		// the poster is already on Cloudinary, take it back down
		if delErr := app.deleteFromCloudinary(posterURL); delErr != nil {
			app.logger.Errorw("error deleting orphaned poster", "error", delErr)
		}

		switch {
		case errors.Is(err, movies.ErrDuplicateTitle):
			app.conflictResponse(w, r, err)
		case errors.Is(err, movies.ErrInvalidReference):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, movie); err != nil {
		app.internalServerError(w, r, err)
	}
}

func parseIDList(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// getMovieHandler godoc
//
//	@Summary		Get movie details
//	@Description	Full movie detail: genres, director, writers, casts and the current average rating.
//	@Tags			movies
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Success		200		{object}	movies.Movie				"Movie detail"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/{movieID} [get]
func (app *application) getMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	movie, err := app.store.Movies.GetByID(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, movie); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMovieHandler godoc
//
//	@Summary		Delete a movie
//	@Description	Removes the movie together with all of its reviews in one transaction, then takes the poster off Cloudinary.
//	@Tags			movies
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Success		200		{object}	map[string]string			"Movie deleted"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/movies/{movieID} [delete]
func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	ctx := r.Context()

	movie, err := app.store.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Movies.DeleteWithReviews(ctx, movieID); err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if movie.Poster != "" {
		if err := app.deleteFromCloudinary(movie.Poster); err != nil {
			app.logger.Errorw("error deleting poster", "movie_id", movieID, "error", err)
		}
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "movie deleted"})
}

// featuredMoviesHandler godoc
//
//	@Summary		Featured movies
//	@Description	Top rated released movies for the landing page.
//	@Tags			movies
//	@Produce		json
//	@Param			limit	query		int							false	"Number of movies (max 50)"
//	@Success		200		{object}	map[string]any				"Featured movies"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/featured [get]
func (app *application) featuredMoviesHandler(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 10)

	results, err := app.store.Movies.Featured(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"movies": results})
}

// searchMoviesHandler godoc
//
//	@Summary		Search movies
//	@Description	Lightweight title search returning picker options.
//	@Tags			movies
//	@Produce		json
//	@Param			query	query		string						true	"Title to search for"
//	@Success		200		{object}	map[string]any				"Matching movies"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/search [get]
func (app *application) searchMoviesHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		app.badRequestResponse(w, r, errors.New("query is required"))
		return
	}

	results, err := app.store.Movies.Search(r.Context(), query, parseLimit(r, 10))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}

// listMoviesByGenreHandler godoc
//
//	@Summary		Movies by genre
//	@Description	Paginated movie listing for one genre.
//	@Tags			movies
//	@Produce		json
//	@Param			genreID	path		int							true	"Genre ID"
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size (max 50)"
//	@Success		200		{object}	map[string]any				"Movies plus pagination meta"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Unknown genre"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/genre/{genreID} [get]
func (app *application) listMoviesByGenreHandler(w http.ResponseWriter, r *http.Request) {
	genreID, err := strconv.ParseInt(chi.URLParam(r, "genreID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid genre ID"))
		return
	}

	ctx := r.Context()

	genre, err := app.store.Genres.GetByID(ctx, genreID)
	if err != nil {
		if errors.Is(err, genres.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	p := params.ParsePagination(r.URL.Query())

	results, total, err := app.store.Movies.ListByGenre(ctx, genreID, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	p.ComputeMeta(total)

	response := map[string]any{
		"genre":      genre,
		"movies":     results,
		"pagination": p,
	}

	app.jsonResponse(w, http.StatusOK, response)
}

// similarMoviesHandler godoc
//
//	@Summary		Similar movies
//	@Description	Movies related to this one, scored by shared genres, cast, writers, tags and director.
//	@Tags			movies
//	@Produce		json
//	@Param			movieID	path		int							true	"Movie ID"
//	@Param			limit	query		int							false	"Number of movies (max 50)"
//	@Success		200		{object}	map[string]any				"Similar movies"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/movies/{movieID}/similar [get]
func (app *application) similarMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	ctx := r.Context()

	exists, err := app.store.Movies.Exists(ctx, movieID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if !exists {
		app.notFoundResponse(w, r, movies.ErrNotFound)
		return
	}

	results, err := app.store.Movies.Similar(ctx, movieID, parseLimit(r, 10))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"movies": results})
}

func parseLimit(r *http.Request, fallback int) int {
	limit := fallback
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}
	return limit
}
