package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/andrebq/hijackbox/authflow"
	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/andrebq/hijackbox/internal/pages"
	"github.com/julienschmidt/httprouter"
)

const (
	MsgMissingFields      = "Missing fields"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgNotLoggedIn        = "Not logged in"
	MsgInternalError      = "Internal error"
)

// AsHandler exposes the auth workflow on its own router
func AsHandler(ctx context.Context, wf *authflow.Workflow) (http.Handler, error) {
	router := httprouter.New()
	Mount(router, wf)
	return router, nil
}

// Mount registers the auth routes on router.
//
// Every outcome, failures included, is answered with 200 and a message.
func Mount(router *httprouter.Router, wf *authflow.Workflow) {
	router.HandlerFunc("GET", "/register", showForm("register"))
	router.HandlerFunc("POST", "/register", register(wf))
	router.HandlerFunc("GET", "/login", showForm("login"))
	router.HandlerFunc("POST", "/login", login(wf))
	router.HandlerFunc("GET", "/logout", logout(wf))
	router.HandlerFunc("GET", "/deleteAccount", deleteAccount(wf))
}

func showForm(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, err := pages.Form(name)
		pages.Send(w, r, html, err)
	}
}

func register(wf *authflow.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, password := r.PostFormValue("email"), r.PostFormValue("password")
		rec, err := wf.Register(r.Context(), email, password)
		if err != nil {
			reply(w, r, "Register", failure(r, err))
			return
		}
		reply(w, r, "Register", pages.Message{
			Text:     fmt.Sprintf("Registered as %v.", rec.Email),
			Link:     "/login",
			LinkText: "Login",
		})
	}
}

func login(wf *authflow.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, password := r.PostFormValue("email"), r.PostFormValue("password")
		rec, err := wf.Login(r.Context(), w, email, password)
		if err != nil {
			reply(w, r, "Login", failure(r, err))
			return
		}
		reply(w, r, "Login", pages.Message{
			Text:     fmt.Sprintf("Logged in as %v.", rec.Email),
			Link:     "/",
			LinkText: "Home",
		})
	}
}

func logout(wf *authflow.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf.Logout(w)
		reply(w, r, "Logout", pages.Message{Text: "Logged out.", Link: "/", LinkText: "Home"})
	}
}

func deleteAccount(wf *authflow.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := wf.DeleteAccount(r.Context(), w, r)
		if err != nil {
			reply(w, r, "Delete account", failure(r, err))
			return
		}
		reply(w, r, "Delete account", pages.Message{Text: "Account deleted.", Link: "/", LinkText: "Home"})
	}
}

func failure(r *http.Request, err error) pages.Message {
	var conflict authflow.ConflictError
	switch {
	case errors.Is(err, authflow.ValidationError{}):
		return pages.Message{Text: MsgMissingFields}
	case errors.As(err, &conflict):
		return pages.Message{Text: MsgUserExists}
	case errors.Is(err, authflow.ErrInvalidCredentials):
		return pages.Message{Text: MsgInvalidCredentials}
	case errors.Is(err, authflow.ErrNotLoggedIn):
		return pages.Message{Text: MsgNotLoggedIn, Link: "/login", LinkText: "Login"}
	}
	logutil.GetOrDefault(r.Context()).Error().Err(err).Msg("Unexpected failure on auth workflow")
	return pages.Message{Text: MsgInternalError}
}

func reply(w http.ResponseWriter, r *http.Request, title string, m pages.Message) {
	html, err := pages.Text(title, m)
	pages.Send(w, r, html, err)
}
