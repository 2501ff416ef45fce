package main

import (
	"net/http"
	"time"

	"interviewsim/internal/contexthelpers"
	"interviewsim/internal/errors"
	"interviewsim/internal/interview"
	"interviewsim/internal/scoring"
)

type interviewTemplateData struct {
	BaseTemplateData

	State          interview.State
	Category       string
	RoundNumber    int
	RoundLimit     int
	Question       string
	RemainingSecs  int
	Evaluation     *scoring.Evaluation
	FollowUps      []followUpView
	FollowUpsLeft  int
	AggregateScore float64
	Error          string
}

type followUpView struct {
	Question string
	Answer   string
}

// interviewStart replaces any previous session with a fresh one. A bank
// failure, e.g. an unknown category, re-renders the home page with an inline
// error instead of a bare error status.
func (app *application) interviewStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	category := r.PostForm.Get("category")

	session, err := app.controller.Start(r.Context(), userID, category)
	if err != nil {
		app.renderHome(w, r, http.StatusUnprocessableEntity, "No questions are available for that category right now.")
		return
	}

	app.sessions.Set(userID, session)
	http.Redirect(w, r, "/interview", http.StatusSeeOther)
}

// interviewPage renders the session in whatever phase it is in. The round
// clock is evaluated on the way in, so an expired budget advances the session
// before anything is shown.
func (app *application) interviewPage(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Session(contexthelpers.AuthenticatedUserID(r.Context()))
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	app.controller.Tick(r.Context(), session)
	app.renderInterview(w, r, http.StatusOK, session, "")
}

func (app *application) interviewAnswer(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Session(contexthelpers.AuthenticatedUserID(r.Context()))
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	err := app.controller.SubmitAnswer(r.Context(), session, r.PostForm.Get("answer"))
	switch {
	case err == nil:
		app.renderInterview(w, r, http.StatusOK, session, "")
	case errors.Is(err, interview.ErrRoundExpired):
		app.renderInterview(w, r, http.StatusOK, session, "Time ran out before your answer was submitted.")
	case errors.Is(err, interview.ErrValidation):
		app.renderInterview(w, r, http.StatusUnprocessableEntity, session, "Please write an answer before submitting.")
	case errors.Is(err, scoring.ErrEvaluation):
		app.renderInterview(w, r, http.StatusUnprocessableEntity, session,
			"Your answer could not be evaluated. Please try rewording it.")
	case errors.Is(err, interview.ErrInvalidState):
		app.renderInterview(w, r, http.StatusOK, session, "")
	default:
		app.serverError(w, r, err)
	}
}

func (app *application) interviewAdvance(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Session(contexthelpers.AuthenticatedUserID(r.Context()))
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := app.controller.Advance(r.Context(), session); err != nil && !errors.Is(err, interview.ErrInvalidState) {
		app.serverError(w, r, err)
		return
	}
	app.renderInterview(w, r, http.StatusOK, session, "")
}

func (app *application) interviewFollowUp(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Session(contexthelpers.AuthenticatedUserID(r.Context()))
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	_, err := app.controller.AskFollowUp(r.Context(), session, r.PostForm.Get("question"))
	switch {
	case err == nil:
		app.renderInterview(w, r, http.StatusOK, session, "")
	case errors.Is(err, interview.ErrValidation):
		app.renderInterview(w, r, http.StatusUnprocessableEntity, session, "Please write a question before asking.")
	case errors.Is(err, interview.ErrFollowUpLimit):
		app.renderInterview(w, r, http.StatusUnprocessableEntity, session, "You have used all your follow-up questions.")
	case errors.Is(err, interview.ErrInvalidState):
		app.renderInterview(w, r, http.StatusOK, session, "")
	default:
		app.serverError(w, r, err)
	}
}

func (app *application) interviewFinish(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Session(contexthelpers.AuthenticatedUserID(r.Context()))
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := app.controller.FinishAndView(session); err != nil {
		app.renderInterview(w, r, http.StatusUnprocessableEntity, session,
			"Ask at least one follow-up question before finishing.")
		return
	}
	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

// renderInterview shows the session panel. The snapshot decouples template
// execution from concurrent requests on the same session; htmx requests get
// just the panel fragment so the countdown poll can swap it in place.
func (app *application) renderInterview(w http.ResponseWriter, r *http.Request, status int,
	session *interview.Session, inlineError string,
) {
	view := app.controller.View(session)

	followUps := make([]followUpView, 0, len(view.FollowUps))
	for _, exchange := range view.FollowUps {
		followUps = append(followUps, followUpView{Question: exchange.Question, Answer: exchange.Answer})
	}

	data := interviewTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		State:            view.State,
		Category:         view.Category,
		RoundNumber:      view.RoundNumber,
		RoundLimit:       interview.RoundLimit,
		Question:         view.Question,
		RemainingSecs:    int(view.Remaining / time.Second),
		Evaluation:       view.Evaluation,
		FollowUps:        followUps,
		FollowUpsLeft:    view.FollowUpsLeft,
		AggregateScore:   view.AggregateScore,
		Error:            inlineError,
	}

	if app.htmx.NewHandler(w, r).IsHxRequest() {
		app.render(w, r, status, "interview", "panel", data)
		return
	}
	app.renderPage(w, r, status, "interview", data)
}
