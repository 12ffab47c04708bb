// Package telemetry keeps process wide, single slot state: an ad click
// counter, the last deleted account and the last request headers seen.
//
// Every cell is last-write-wins and nothing keeps history.
package telemetry

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/rs/zerolog"
)

type (
	Counters struct {
		clicks      atomic.Int64
		lastDeleted atomic.Pointer[string]
		lastHeaders atomic.Pointer[map[string]string]
	}

	Snapshot struct {
		Clicks             int64             `json:"clicks"`
		LastDeletedAccount *string           `json:"lastDeletedAccount"`
		LastHeaders        map[string]string `json:"lastHeaders"`
	}
)

func New() *Counters {
	return &Counters{}
}

// AdClick increments the click counter and returns the new total.
func (c *Counters) AdClick(ctx context.Context, adID string) int64 {
	total := c.clicks.Add(1)
	logutil.GetOrDefault(ctx).Info().Str("ad_id", adID).Int64("total", total).Msg("Ad click recorded")
	return total
}

// LogHeaders replaces the previous snapshot with every header of the
// current request, cookies and credentials included.
func (c *Counters) LogHeaders(ctx context.Context, headers http.Header) {
	snap := make(map[string]string, len(headers))
	for k, v := range headers {
		snap[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	c.lastHeaders.Store(&snap)

	dict := zerolog.Dict()
	for _, k := range sortedKeys(snap) {
		dict = dict.Str(k, snap[k])
	}
	logutil.GetOrDefault(ctx).Info().Dict("headers", dict).Msg("Headers from client")
}

func (c *Counters) RecordDeletion(ctx context.Context, email string) {
	c.lastDeleted.Store(&email)
	logutil.GetOrDefault(ctx).Warn().Str("email", email).Msg("Account deleted")
}

func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{
		Clicks:             c.clicks.Load(),
		LastDeletedAccount: c.lastDeleted.Load(),
	}
	if h := c.lastHeaders.Load(); h != nil {
		s.LastHeaders = *h
	}
	return s
}

// SortedHeaders returns the header names of the snapshot in order
func (s Snapshot) SortedHeaders() []string {
	return sortedKeys(s.LastHeaders)
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
