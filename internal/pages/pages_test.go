package pages

import (
	"testing"
	"time"

	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/telemetry"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	html, err := Home(Dashboard{})
	require.NoError(t, err)
	require.Contains(t, html, "<p>Not logged in</p>")
	require.Contains(t, html, "Ad clicks: 0")
	require.Contains(t, html, "Last deleted account: none")

	deleted := "old@x.com"
	html, err = Home(Dashboard{
		User: &identity.UserRecord{ID: "t", Email: "<b>a@x.com</b>"},
		Telemetry: telemetry.Snapshot{
			Clicks:             3,
			LastDeletedAccount: &deleted,
			LastHeaders:        map[string]string{"cookie": "SESSION=t", "accept": "*/*"},
		},
	})
	require.NoError(t, err)
	require.Contains(t, html, "Logged in as: &lt;b&gt;a@x.com&lt;/b&gt;")
	require.Contains(t, html, "Ad clicks: 3")
	require.Contains(t, html, "Last deleted account: old@x.com")
	require.Contains(t, html, "<li>accept: */*</li>\n<li>cookie: SESSION=t</li>")
}

func TestForms(t *testing.T) {
	for name, action := range map[string]string{
		"register": `action="/register"`,
		"login":    `action="/login"`,
		"phish":    `action="/steal"`,
	} {
		html, err := Form(name)
		require.NoError(t, err)
		require.Contains(t, html, action)
	}
	_, err := Form("admin")
	require.Error(t, err)
}

func TestCaptures(t *testing.T) {
	html, err := Captures(nil)
	require.NoError(t, err)
	require.Contains(t, html, "Nothing captured yet")

	at := time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC)
	html, err = Captures([]harvest.Capture{
		{Email: "first@x.com", Password: "one", CapturedAt: at},
		{Email: "second@x.com", Password: "two", CapturedAt: at},
	})
	require.NoError(t, err)
	require.Contains(t, html, "<td>1</td><td>first@x.com</td><td>one</td><td>2022-05-01T10:00:00Z</td>")
	require.Contains(t, html, "<td>2</td><td>second@x.com</td><td>two</td>")
}

func TestText(t *testing.T) {
	html, err := Text("Login", Message{Text: "Logged in as a@x.com.", Link: "/", LinkText: "Home"})
	require.NoError(t, err)
	require.Contains(t, html, `<p>Logged in as a@x.com. <a href="/">Home</a></p>`)
	require.Contains(t, html, "<title>Login</title>")
}
