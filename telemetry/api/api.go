package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andrebq/hijackbox/internal/pages"
	"github.com/andrebq/hijackbox/telemetry"
	"github.com/julienschmidt/httprouter"
)

const (
	MsgHeadersLogged = "Headers logged (check server logs)."
)

func AsHandler(ctx context.Context, c *telemetry.Counters) (http.Handler, error) {
	router := httprouter.New()
	Mount(router, c)
	return router, nil
}

// Mount registers the telemetry routes, none of them requires a session
func Mount(router *httprouter.Router, c *telemetry.Counters) {
	router.HandlerFunc("GET", "/adClick", adClick(c))
	router.HandlerFunc("GET", "/logHeaders", logHeaders(c))
	router.HandlerFunc("GET", "/api/telemetry", snapshot(c))
}

func adClick(c *telemetry.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total := c.AdClick(r.Context(), r.URL.Query().Get("id"))
		html, err := pages.Text("Ad click", pages.Message{Text: fmt.Sprintf("Ad click registered. Total: %v", total)})
		pages.Send(w, r, html, err)
	}
}

func logHeaders(c *telemetry.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headers := r.Header.Clone()
		// net/http moves Host out of the header map
		if r.Host != "" {
			headers.Set("Host", r.Host)
		}
		c.LogHeaders(r.Context(), headers)
		html, err := pages.Text("Log headers", pages.Message{Text: MsgHeadersLogged})
		pages.Send(w, r, html, err)
	}
}

func snapshot(c *telemetry.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(c.Snapshot())
	}
}
