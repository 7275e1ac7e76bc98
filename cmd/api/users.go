package main

import (
	"errors"
	"net/http"

	"github.com/wejdan/movies-server/internal/domain/users"
)

// getCurrentUserHandler godoc
//
//	@Summary		Get current user's profile
//	@Description	Returns the profile of the authenticated user.
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User					"Current user"
//	@Failure		401	{object}	error						"Unauthorized"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userCtx := getUserFromContext(r)
	if userCtx == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("not authorized"))
		return
	}

	// re-fetch fresh data from DB to avoid stale info
	user, err := app.store.Users.GetByID(r.Context(), userCtx.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdatePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// updatePasswordHandler godoc
//
//	@Summary		Change password
//	@Description	Changes the authenticated user's password and issues fresh tokens. Older tokens stop working.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdatePasswordPayload		true	"Current and new password"
//	@Success		200		{object}	Envelope					"Fresh token pair"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		401		{object}	error						"Unauthorized"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users/password [patch]
func (app *application) updatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("not authorized"))
		return
	}

	var payload UpdatePasswordPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := user.Password.Compare(payload.CurrentPassword); err != nil {
		app.unauthorizedErrorResponse(w, r, errors.New("current password is wrong"))
		return
	}

	ctx := r.Context()

	if err := user.Password.Set(payload.NewPassword); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.UpdatePassword(ctx, user.ID, user.Password.Hash()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// The change kills every outstanding token, so hand back a fresh pair.
	accessToken, refreshToken, err := app.authenticator.GenerateTokens(user.ID, user.Role())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
