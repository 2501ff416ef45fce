package main

import (
	"net/http"

	"interviewsim/internal/contexthelpers"
	"interviewsim/internal/interview"
	"interviewsim/internal/models"
)

type resultsTemplateData struct {
	BaseTemplateData

	Category       string
	AggregateScore float64
	Rounds         []models.Round
	FollowUps      []followUpView
}

// results shows the completed session's summary. The page reads from the
// in-memory session, so it survives only until a new interview starts or the
// user logs out; the persisted copy lives under /history.
func (app *application) results(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Session(contexthelpers.AuthenticatedUserID(r.Context()))
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := app.controller.View(session)
	if view.State != interview.StateCompleted {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	followUps := make([]followUpView, 0, len(view.FollowUps))
	for _, exchange := range view.FollowUps {
		followUps = append(followUps, followUpView{Question: exchange.Question, Answer: exchange.Answer})
	}

	app.renderPage(w, r, http.StatusOK, "results", resultsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Category:         view.Category,
		AggregateScore:   view.AggregateScore,
		Rounds:           view.Rounds,
		FollowUps:        followUps,
	})
}
