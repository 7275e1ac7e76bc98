package main

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wejdan/movies-server/internal/domain/actors"
	"github.com/wejdan/movies-server/internal/params"
)

var actorGenders = []string{"male", "female", "other"}

// createActorHandler godoc
//
//	@Summary		Create an actor
//	@Description	Creates an actor from a multipart form. The profile picture is stored on Cloudinary.
//	@Tags			actors
//	@Accept			mpfd
//	@Produce		json
//	@Param			name	formData	string						true	"Name"
//	@Param			profile	formData	file						false	"Profile picture"
//	@Success		201		{object}	actors.Actor				"Actor created"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		409		{object}	ErrorBadRequestResponse		"Duplicate name"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/actors [post]
func (app *application) createActorHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		app.badRequestResponse(w, r, errors.New("unable to parse form, size limit is 5MB"))
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	about := strings.TrimSpace(r.FormValue("about"))
	gender := r.FormValue("gender")

	if name == "" || about == "" {
		app.badRequestResponse(w, r, errors.New("name and about are required"))
		return
	}
	if !slices.Contains(actorGenders, gender) {
		app.badRequestResponse(w, r, fmt.Errorf("gender must be one of %v", actorGenders))
		return
	}

	actor := &actors.Actor{
		Name:   name,
		About:  about,
		Gender: gender,
	}

	if file, _, err := r.FormFile("profile"); err == nil {
		defer file.Close()

		publicID := fmt.Sprintf("actor_%d", time.Now().UnixNano())
		profileURL, err := app.uploadToCloudinary(file, "actors", publicID)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		actor.Profile = profileURL
	}

	if err := app.store.Actors.Create(r.Context(), actor); err != nil {
		if actor.Profile != "" {
			if delErr := app.deleteFromCloudinary(actor.Profile); delErr != nil {
				app.logger.Errorw("error deleting orphaned profile picture", "error", delErr)
			}
		}

		switch {
		case errors.Is(err, actors.ErrDuplicateName):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, actor); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getActorHandler godoc
//
//	@Summary		Get an actor
//	@Tags			actors
//	@Produce		json
//	@Param			actorID	path		int							true	"Actor ID"
//	@Success		200		{object}	actors.Actor				"Actor"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/actors/{actorID} [get]
func (app *application) getActorHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := strconv.ParseInt(chi.URLParam(r, "actorID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid actor ID"))
		return
	}

	actor, err := app.store.Actors.GetByID(r.Context(), actorID)
	if err != nil {
		if errors.Is(err, actors.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, actor); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listActorsHandler godoc
//
//	@Summary		List actors
//	@Description	Paginated actor listing, optionally filtered by a name search.
//	@Tags			actors
//	@Produce		json
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size (max 50)"
//	@Param			query	query		string						false	"Name filter"
//	@Success		200		{object}	map[string]any				"Actors plus pagination meta"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/actors [get]
func (app *application) listActorsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())
	query := r.URL.Query().Get("query")

	results, total, err := app.store.Actors.List(r.Context(), query, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	p.ComputeMeta(total)

	response := map[string]any{
		"actors":     results,
		"pagination": p,
	}

	app.jsonResponse(w, http.StatusOK, response)
}

// searchActorsHandler godoc
//
//	@Summary		Search actors
//	@Description	Lightweight name search used by the movie form pickers.
//	@Tags			actors
//	@Produce		json
//	@Param			query	query		string						true	"Name to search for"
//	@Success		200		{object}	map[string]any				"Matching actors"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/actors/search [get]
func (app *application) searchActorsHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		app.badRequestResponse(w, r, errors.New("query is required"))
		return
	}

	results, err := app.store.Actors.Search(r.Context(), query, parseLimit(r, 10))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}

// deleteActorHandler godoc
//
//	@Summary		Delete an actor
//	@Description	Removes the actor and takes the profile picture off Cloudinary.
//	@Tags			actors
//	@Produce		json
//	@Param			actorID	path		int							true	"Actor ID"
//	@Success		200		{object}	map[string]string			"Actor deleted"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/actors/{actorID} [delete]
func (app *application) deleteActorHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := strconv.ParseInt(chi.URLParam(r, "actorID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid actor ID"))
		return
	}

	ctx := r.Context()

	actor, err := app.store.Actors.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, actors.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Actors.Delete(ctx, actorID); err != nil {
		if errors.Is(err, actors.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if actor.Profile != "" {
		if err := app.deleteFromCloudinary(actor.Profile); err != nil {
			app.logger.Errorw("error deleting profile picture", "actor_id", actorID, "error", err)
		}
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "actor deleted"})
}
