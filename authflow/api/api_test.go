package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/andrebq/hijackbox/authflow"
	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/internal/testutil"
	"github.com/andrebq/hijackbox/telemetry"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

func acquireHandler(t *testing.T) (http.Handler, *telemetry.Counters) {
	store, err := identity.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	counters := telemetry.New()
	handler, err := AsHandler(context.Background(), authflow.New(store, counters, nil))
	require.NoError(t, err)
	return handler, counters
}

func TestForms(t *testing.T) {
	handler, _ := acquireHandler(t)
	apitest.Handler(handler).Get("/register").Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(`<form method="POST" action="/register">`)).
		End()
	apitest.Handler(handler).Get("/login").Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(`<form method="POST" action="/login">`)).
		End()
}

func TestRegister(t *testing.T) {
	handler, _ := acquireHandler(t)
	apitest.Handler(handler).Post("/register").
		FormData("email", "a@x.com").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgMissingFields)).
		End()
	apitest.Handler(handler).Post("/register").
		FormData("email", "a@x.com").FormData("password", "p1").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains("Registered as a@x.com.")).
		CookieNotPresent("SESSION").
		End()
	apitest.Handler(handler).Post("/register").
		FormData("email", "a@x.com").FormData("password", "p2").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgUserExists)).
		End()
}

func TestLoginLogout(t *testing.T) {
	handler, _ := acquireHandler(t)
	apitest.Handler(handler).Post("/register").
		FormData("email", "a@x.com").FormData("password", "p1").
		Expect(t).Status(http.StatusOK).End()

	for _, passwd := range []string{"wrong", ""} {
		apitest.Handler(handler).Post("/login").
			FormData("email", "a@x.com").FormData("password", passwd).
			Expect(t).
			Status(http.StatusOK).
			Assert(testutil.BodyContains(MsgInvalidCredentials)).
			CookieNotPresent("SESSION").
			End()
	}
	apitest.Handler(handler).Post("/login").
		FormData("email", "ghost@x.com").FormData("password", "p1").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgInvalidCredentials)).
		End()

	res := apitest.Handler(handler).Post("/login").
		FormData("email", "a@x.com").FormData("password", "p1").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains("Logged in as a@x.com.")).
		CookiePresent("SESSION").
		End()
	cookie := testutil.SessionCookie(res.Response)
	require.NotNil(t, cookie)
	require.False(t, cookie.HttpOnly)
	require.Len(t, cookie.Value, 16)

	apitest.Handler(handler).Get("/logout").
		Cookie("SESSION", cookie.Value).
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains("Logged out.")).
		Cookies(apitest.NewCookie("SESSION").Value("").MaxAge(-1)).
		End()
	apitest.Handler(handler).Get("/logout").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains("Logged out.")).
		End()
}

func TestDeleteAccount(t *testing.T) {
	handler, counters := acquireHandler(t)
	apitest.Handler(handler).Get("/deleteAccount").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgNotLoggedIn)).
		End()

	apitest.Handler(handler).Post("/register").
		FormData("email", "a@x.com").FormData("password", "p1").
		Expect(t).Status(http.StatusOK).End()
	res := apitest.Handler(handler).Post("/login").
		FormData("email", "a@x.com").FormData("password", "p1").
		Expect(t).Status(http.StatusOK).End()
	cookie := testutil.SessionCookie(res.Response)
	require.NotNil(t, cookie)

	apitest.Handler(handler).Get("/deleteAccount").
		Cookie("SESSION", cookie.Value).
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains("Account deleted.")).
		Cookies(apitest.NewCookie("SESSION").Value("").MaxAge(-1)).
		End()
	require.Equal(t, "a@x.com", *counters.Snapshot().LastDeletedAccount)

	apitest.Handler(handler).Get("/deleteAccount").
		Cookie("SESSION", cookie.Value).
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgNotLoggedIn)).
		End()
	apitest.Handler(handler).Post("/login").
		FormData("email", "a@x.com").FormData("password", "p1").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgInvalidCredentials)).
		End()
}
