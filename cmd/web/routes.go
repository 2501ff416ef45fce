package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate, commonContext)
	protected := dynamic.Append(app.requireAuthentication)

	mux.Handle("GET /{$}", dynamic.ThenFunc(app.home))

	mux.Handle("GET /user/signup", dynamic.ThenFunc(app.signupForm))
	mux.Handle("POST /user/signup", dynamic.ThenFunc(app.signup))
	mux.Handle("GET /user/login", dynamic.ThenFunc(app.loginForm))
	mux.Handle("POST /user/login", dynamic.ThenFunc(app.login))
	mux.Handle("POST /user/logout", protected.ThenFunc(app.logout))

	mux.Handle("POST /interview/start", protected.ThenFunc(app.interviewStart))
	mux.Handle("GET /interview", protected.ThenFunc(app.interviewPage))
	mux.Handle("POST /interview/answer", protected.ThenFunc(app.interviewAnswer))
	mux.Handle("POST /interview/advance", protected.ThenFunc(app.interviewAdvance))
	mux.Handle("GET /interview/followup", protected.ThenFunc(app.interviewPage))
	mux.Handle("POST /interview/followup", protected.ThenFunc(app.interviewFollowUp))
	mux.Handle("POST /interview/finish", protected.ThenFunc(app.interviewFinish))
	mux.Handle("GET /results", protected.ThenFunc(app.results))

	mux.Handle("GET /history", protected.ThenFunc(app.history))
	mux.Handle("GET /history/{interviewID}", protected.ThenFunc(app.historyDetail))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
