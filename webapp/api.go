package webapp

import (
	"context"
	"net/http"

	authapi "github.com/andrebq/hijackbox/authflow/api"
	harvestapi "github.com/andrebq/hijackbox/harvest/api"
	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/andrebq/hijackbox/internal/pages"
	telemetryapi "github.com/andrebq/hijackbox/telemetry/api"
	"github.com/julienschmidt/httprouter"
)

func AsHandler(ctx context.Context, st *State) (http.Handler, error) {
	router := httprouter.New()
	router.HandlerFunc("GET", "/", home(st))
	authapi.Mount(router, st.Auth)
	telemetryapi.Mount(router, st.Telemetry)
	harvestapi.Mount(router, st.Harvest)
	return router, nil
}

func home(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := pages.Dashboard{Telemetry: st.Telemetry.Snapshot()}
		user, found, err := st.Auth.Whoami(r.Context(), r)
		if err != nil {
			// render as anonymous, the dashboard never fails
			logutil.GetOrDefault(r.Context()).Error().Err(err).Msg("Unable to resolve session")
		} else if found {
			d.User = &user
		}
		html, err := pages.Home(d)
		pages.Send(w, r, html, err)
	}
}
