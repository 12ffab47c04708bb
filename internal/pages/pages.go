// Package pages renders the html served by hijackbox.
package pages

import (
	"embed"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/andrebq/hijackbox/telemetry"
	"github.com/flosch/pongo2/v6"
)

type (
	// Dashboard is everything the home page shows
	Dashboard struct {
		User      *identity.UserRecord
		Telemetry telemetry.Snapshot
	}

	Message struct {
		Text     string
		Link     string
		LinkText string
	}

	header struct {
		Name  string
		Value string
	}

	captureRow struct {
		Email      string
		Password   string
		CapturedAt string
		RemoteAddr string
	}
)

var (
	//go:embed templates/*.html
	files embed.FS

	layout    = mustLoad("layout")
	templates = map[string]*pongo2.Template{
		"dashboard": mustLoad("dashboard"),
		"register":  mustLoad("register"),
		"login":     mustLoad("login"),
		"message":   mustLoad("message"),
		"phish":     mustLoad("phish"),
		"stolen":    mustLoad("stolen"),
	}
)

// Home renders the dashboard for the given session and telemetry state.
func Home(d Dashboard) (string, error) {
	ctx := pongo2.Context{
		"loggedIn":   d.User != nil,
		"clicks":     d.Telemetry.Clicks,
		"hasDeleted": d.Telemetry.LastDeletedAccount != nil,
		"headers":    headerRows(d.Telemetry),
	}
	if d.User != nil {
		ctx["email"] = d.User.Email
	}
	if d.Telemetry.LastDeletedAccount != nil {
		ctx["lastDeleted"] = *d.Telemetry.LastDeletedAccount
	}
	return render("Demo Hijack App", "dashboard", ctx)
}

// Form renders one of the static forms: register, login or phish
func Form(name string) (string, error) {
	switch name {
	case "register":
		return render("Register", name, nil)
	case "login":
		return render("Login", name, nil)
	case "phish":
		return render("Sign in", name, nil)
	}
	return "", fmt.Errorf("unknown form %v", name)
}

func Text(title string, m Message) (string, error) {
	return render(title, "message", pongo2.Context{
		"message":  m.Text,
		"link":     m.Link,
		"linkText": m.LinkText,
	})
}

func Captures(entries []harvest.Capture) (string, error) {
	rows := make([]captureRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, captureRow{
			Email:      e.Email,
			Password:   e.Password,
			CapturedAt: e.CapturedAt.Format(time.RFC3339),
			RemoteAddr: e.RemoteAddr,
		})
	}
	return render("Stolen", "stolen", pongo2.Context{"captures": rows})
}

// Send writes html with a 200 status. Failures to render are reported
// as a 500 since they never depend on user input.
func Send(w http.ResponseWriter, r *http.Request, html string, err error) {
	if err != nil {
		logutil.GetOrDefault(r.Context()).Error().Err(err).Msg("Unable to render page")
		http.Error(w, "unable to render page, check logs for more information", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(html)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func render(title, name string, data pongo2.Context) (string, error) {
	tpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown page %v", name)
	}
	body, err := tpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("unable to render %v, cause %w", name, err)
	}
	return layout.Execute(pongo2.Context{"title": title, "body": body})
}

func headerRows(s telemetry.Snapshot) []header {
	var out []header
	for _, k := range s.SortedHeaders() {
		out = append(out, header{Name: k, Value: s.LastHeaders[k]})
	}
	return out
}

func mustLoad(name string) *pongo2.Template {
	buf, err := files.ReadFile("templates/" + name + ".html")
	if err != nil {
		panic(err)
	}
	return pongo2.Must(pongo2.FromBytes(buf))
}
