package main

import (
	"net/http"

	"interviewsim/internal/contexthelpers"
	"interviewsim/internal/models"
)

type homeTemplateData struct {
	BaseTemplateData

	Categories []string
	Stats      models.UserStats
	Recent     []models.Interview
	StartError string
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.renderHome(w, r, http.StatusOK, "")
}

func (app *application) renderHome(w http.ResponseWriter, r *http.Request, status int, startError string) {
	ctx := r.Context()
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Categories:       app.bank.Categories(),
		StartError:       startError,
	}

	if userID := contexthelpers.AuthenticatedUserID(ctx); userID != 0 {
		stats, err := app.interviews.Stats(ctx, userID)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		data.Stats = stats

		recent, err := app.interviews.ListInterviews(ctx, userID)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		if len(recent) > 5 {
			recent = recent[:5]
		}
		data.Recent = recent
	}

	app.renderPage(w, r, status, "home", data)
}
