// Package session binds identity tokens to the SESSION cookie.
//
// The cookie is readable from client side scripts, is never signed and never
// expires. Whoever holds the value is the user.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/andrebq/hijackbox/identity"
)

const (
	CookieName = "SESSION"
)

// Resolve returns the user whose token is carried by the request cookie.
// A missing cookie or a token that is no longer in the store yields false.
func Resolve(ctx context.Context, store identity.Store, r *http.Request) (identity.UserRecord, bool, error) {
	tk, ok := Token(r)
	if !ok {
		return identity.UserRecord{}, false, nil
	}
	return store.Get(ctx, tk)
}

// Token extracts the raw cookie value without checking the store
func Token(r *http.Request) (identity.Token, bool) {
	c, err := r.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) || c == nil || c.Value == "" {
		return "", false
	}
	return identity.Token(c.Value), true
}

func Bind(w http.ResponseWriter, id identity.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(id),
		Path:     "/",
		HttpOnly: false,
	})
}

// Clear asks the client to drop the cookie, the token itself stays valid
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
