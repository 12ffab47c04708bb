package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/andrebq/hijackbox/internal/testutil"
	"github.com/andrebq/hijackbox/telemetry"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
)

func TestAdClick(t *testing.T) {
	counters := telemetry.New()
	handler, err := AsHandler(context.Background(), counters)
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		apitest.Handler(handler).
			Get("/adClick").
			Query("id", "123").
			Expect(t).
			Status(http.StatusOK).
			Assert(testutil.BodyContains(fmt.Sprintf("Ad click registered. Total: %v", i))).
			End()
	}
	apitest.Handler(handler).
		Get("/api/telemetry").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.clicks`, float64(3))).
		End()
}

func TestLogHeaders(t *testing.T) {
	counters := telemetry.New()
	handler, err := AsHandler(context.Background(), counters)
	require.NoError(t, err)

	apitest.Handler(handler).
		Get("/logHeaders").
		Header("Authorization", "Bearer first").
		Cookie("SESSION", "deadbeef").
		Expect(t).
		Status(http.StatusOK).
		Assert(testutil.BodyContains(MsgHeadersLogged)).
		End()
	snap := counters.Snapshot()
	require.Equal(t, "Bearer first", snap.LastHeaders["authorization"])
	require.Equal(t, "SESSION=deadbeef", snap.LastHeaders["cookie"])

	apitest.Handler(handler).
		Get("/logHeaders").
		Header("X-Second", "yes").
		Expect(t).
		Status(http.StatusOK).
		End()
	snap = counters.Snapshot()
	require.Equal(t, "yes", snap.LastHeaders["x-second"])
	require.NotContains(t, snap.LastHeaders, "authorization", "only the last snapshot is kept")

	apitest.Handler(handler).
		Get("/api/telemetry").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.lastHeaders["x-second"]`, "yes")).
		End()
}
