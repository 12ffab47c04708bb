package harvest_test

import (
	"context"
	"testing"
	"time"

	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestMemoryLog(t *testing.T) {
	testutil.HarvestLogContract(t, harvest.NewMemoryLog())
}

func TestCaptureAlwaysAppends(t *testing.T) {
	ctx := context.Background()
	log := harvest.NewMemoryLog()
	at := time.Date(2022, 5, 1, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	h := harvest.New(log).WithClock(func() time.Time { return at })

	require.NoError(t, h.Capture(ctx, "", "", harvest.Source{}))
	n, err := log.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, h.Capture(ctx, "victim@example.com", "hunter2", harvest.Source{RemoteAddr: "10.0.0.1:1234", UserAgent: "firefox"}))
	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []harvest.Capture{
		{CapturedAt: at.UTC()},
		{Email: "victim@example.com", Password: "hunter2", CapturedAt: at.UTC(), RemoteAddr: "10.0.0.1:1234", UserAgent: "firefox"},
	}, entries)
}
