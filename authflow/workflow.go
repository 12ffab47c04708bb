// Package authflow implements register, login, logout and account deletion
// on top of an identity.Store.
//
// A client is either anonymous or authenticated by the token in its cookie.
// Registering does not log anyone in, logging out only drops the cookie and
// deleting an account invalidates the token for every client holding it,
// which they only notice on their next request.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/andrebq/hijackbox/session"
	validation "github.com/go-ozzo/ozzo-validation"
)

type (
	// DeletionRecorder is told about every deleted account
	DeletionRecorder interface {
		RecordDeletion(ctx context.Context, email string)
	}

	Workflow struct {
		users    identity.Store
		deletion DeletionRecorder
		entropy  io.Reader
	}

	registration struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

// New returns a workflow over users. entropy feeds token generation and
// may be nil to use crypto/rand.
func New(users identity.Store, deletion DeletionRecorder, entropy io.Reader) *Workflow {
	return &Workflow{
		users:    users,
		deletion: deletion,
		entropy:  entropy,
	}
}

func (w *Workflow) Users() identity.Store {
	return w.users
}

// Register creates a new user. The email check and the insert are two
// separate store calls, concurrent registrations may both pass the check.
func (w *Workflow) Register(ctx context.Context, email, password string) (identity.UserRecord, error) {
	if err := (registration{Email: email, Password: password}).validate(); err != nil {
		return identity.UserRecord{}, err
	}
	_, exists, err := w.users.FindByEmail(ctx, email)
	if err != nil {
		return identity.UserRecord{}, err
	}
	if exists {
		return identity.UserRecord{}, ConflictError{Email: email}
	}
	id, err := identity.NewToken(w.entropy)
	if err != nil {
		return identity.UserRecord{}, err
	}
	rec := identity.UserRecord{ID: id, Email: email, Password: password}
	if err := w.users.Put(ctx, rec); err != nil {
		return identity.UserRecord{}, fmt.Errorf("unable to register %v, cause %w", email, err)
	}
	logutil.GetOrDefault(ctx).Info().Str("email", email).Msg("User registered")
	return rec, nil
}

// Login binds the session cookie of the matching user to rw.
func (w *Workflow) Login(ctx context.Context, rw http.ResponseWriter, email, password string) (identity.UserRecord, error) {
	rec, found, err := w.users.FindByCredentials(ctx, email, password)
	if err != nil {
		return identity.UserRecord{}, err
	}
	if !found {
		return identity.UserRecord{}, ErrInvalidCredentials
	}
	session.Bind(rw, rec.ID)
	return rec, nil
}

// Logout clears the cookie whether or not there was a session
func (w *Workflow) Logout(rw http.ResponseWriter) {
	session.Clear(rw)
}

// Whoami resolves the session carried by r
func (w *Workflow) Whoami(ctx context.Context, r *http.Request) (identity.UserRecord, bool, error) {
	return session.Resolve(ctx, w.users, r)
}

// DeleteAccount removes the user behind the request session.
func (w *Workflow) DeleteAccount(ctx context.Context, rw http.ResponseWriter, r *http.Request) (identity.UserRecord, error) {
	rec, found, err := session.Resolve(ctx, w.users, r)
	if err != nil {
		return identity.UserRecord{}, err
	}
	if !found {
		return identity.UserRecord{}, ErrNotLoggedIn
	}
	if w.deletion != nil {
		w.deletion.RecordDeletion(ctx, rec.Email)
	}
	if err := w.users.Delete(ctx, rec.ID); err != nil {
		return identity.UserRecord{}, fmt.Errorf("unable to delete account %v, cause %w", rec.Email, err)
	}
	session.Clear(rw)
	return rec, nil
}

func (r registration) validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return err
	}
	out := ValidationError{}
	for name := range fields {
		out.Fields = append(out.Fields, name)
	}
	sort.Strings(out.Fields)
	return out
}
