package main

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"interviewsim/internal/contexthelpers"
	"interviewsim/internal/errors"
	"interviewsim/internal/repositories"
)

const minPasswordLength = 8

type authTemplateData struct {
	BaseTemplateData

	Email string
	Error string
}

func (app *application) signupForm(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, http.StatusOK, "signup", authTemplateData{BaseTemplateData: newBaseTemplateData(r)})
}

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	renderError := func(message string) {
		app.renderPage(w, r, http.StatusUnprocessableEntity, "signup", authTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Email:            email,
			Error:            message,
		})
	}

	if name == "" || email == "" {
		renderError("Name and email are required.")
		return
	}
	if len(password) < minPasswordLength {
		renderError("Password must be at least 8 characters long.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "hash password"))
		return
	}

	userID, err := app.users.Create(r.Context(), name, email, string(hash))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			renderError("That email address is already registered.")
			return
		}
		app.serverError(w, r, err)
		return
	}

	if err = app.loginSession(r, userID); err != nil {
		app.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) loginForm(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, http.StatusOK, "login", authTemplateData{BaseTemplateData: newBaseTemplateData(r)})
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	renderError := func() {
		app.renderPage(w, r, http.StatusUnprocessableEntity, "login", authTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Email:            email,
			Error:            "Email or password is incorrect.",
		})
	}

	user, err := app.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			renderError()
			return
		}
		app.serverError(w, r, err)
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		renderError()
		return
	}

	if err = app.loginSession(r, user.ID); err != nil {
		app.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginSession rotates the session token and records the authenticated user.
// Token renewal on privilege change mitigates session fixation.
func (app *application) loginSession(r *http.Request, userID int64) error {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		return errors.Wrap(err, "renew session token")
	}
	app.sessionManager.Put(r.Context(), string(userIDSessionKey), userID)
	return nil
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Remove(ctx, string(userIDSessionKey))

	// Drop the in-memory interview session as well; rounds live on in the store.
	if userID := contexthelpers.AuthenticatedUserID(ctx); userID != 0 {
		app.sessions.Drop(userID)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
