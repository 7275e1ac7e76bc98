package main

import (
	"net/http"
)

// listGenresHandler godoc
//
//	@Summary		List genres
//	@Tags			genres
//	@Produce		json
//	@Success		200	{object}	map[string]any				"All genres"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/genres [get]
func (app *application) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	results, err := app.store.Genres.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"genres": results})
}
