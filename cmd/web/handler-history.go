package main

import (
	"net/http"

	"interviewsim/internal/contexthelpers"
	"interviewsim/internal/errors"
	"interviewsim/internal/models"
	"interviewsim/internal/repositories"
)

type historyTemplateData struct {
	BaseTemplateData

	Stats      models.UserStats
	Interviews []models.Interview
}

func (app *application) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contexthelpers.AuthenticatedUserID(ctx)

	stats, err := app.interviews.Stats(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	interviews, err := app.interviews.ListInterviews(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.renderPage(w, r, http.StatusOK, "history", historyTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Stats:            stats,
		Interviews:       interviews,
	})
}

type historyDetailTemplateData struct {
	BaseTemplateData

	Interview *models.Interview
	Responses []models.RoundResponse
}

// historyDetail shows one persisted interview. Lookups are scoped to the
// authenticated user, so foreign ids fall through to a 404.
func (app *application) historyDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contexthelpers.AuthenticatedUserID(ctx)
	interviewID := r.PathValue("interviewID")

	interview, err := app.interviews.GetInterview(ctx, interviewID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	responses, err := app.interviews.ListRoundResponses(ctx, interviewID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.renderPage(w, r, http.StatusOK, "historydetail", historyDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Interview:        interview,
		Responses:        responses,
	})
}
