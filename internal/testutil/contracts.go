package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/identity"
	"github.com/stretchr/testify/require"
)

// IdentityStoreContract checks the behaviour every Store implementation shares
func IdentityStoreContract(t *testing.T, store identity.Store) {
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	alice := identity.UserRecord{ID: "a1", Email: "alice@example.com", Password: "p1"}
	bob := identity.UserRecord{ID: "b1", Email: "bob@example.com", Password: "p2"}
	require.NoError(t, store.Put(ctx, alice))
	require.NoError(t, store.Put(ctx, bob))

	got, found, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, alice, got)

	got, found, err = store.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, bob, got)

	_, found, err = store.FindByEmail(ctx, "BOB@example.com")
	require.NoError(t, err)
	require.False(t, found, "email match is case sensitive")

	got, found, err = store.FindByCredentials(ctx, "alice@example.com", "p1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, identity.Token("a1"), got.ID)

	_, found, err = store.FindByCredentials(ctx, "alice@example.com", "p2")
	require.NoError(t, err)
	require.False(t, found)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []identity.UserRecord{alice, bob}, all)

	// same id replaces the previous record
	mallory := identity.UserRecord{ID: "a1", Email: "mallory@example.com", Password: "p3"}
	require.NoError(t, store.Put(ctx, mallory))
	got, _, err = store.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, mallory, got)

	require.NoError(t, store.Delete(ctx, "a1"))
	_, found, err = store.Get(ctx, "a1")
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, store.Delete(ctx, "a1"), "deleting twice is not an error")

	// email uniqueness is not enforced by the store
	twin := identity.UserRecord{ID: "b2", Email: "bob@example.com", Password: "p2"}
	require.NoError(t, store.Put(ctx, twin))
	all, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// form values are not required to be valid utf-8
	raw := identity.UserRecord{ID: "c1", Email: "a\xff@example.com", Password: "p\xfe1"}
	require.NoError(t, store.Put(ctx, raw))
	got, found, err = store.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, raw, got)
	got, found, err = store.FindByEmail(ctx, "a\xff@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, raw, got)
	_, found, err = store.FindByEmail(ctx, "a\ufffd@example.com")
	require.NoError(t, err)
	require.False(t, found)
	got, found, err = store.FindByCredentials(ctx, "a\xff@example.com", "p\xfe1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, identity.Token("c1"), got.ID)
}

// HarvestLogContract checks the behaviour every harvest.Log shares
func HarvestLogContract(t *testing.T, log harvest.Log) {
	ctx := context.Background()
	n, err := log.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	at := time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC)
	first := harvest.Capture{Email: "victim@example.com", Password: "hunter2", CapturedAt: at, RemoteAddr: "10.0.0.1:5555", UserAgent: "curl"}
	second := harvest.Capture{CapturedAt: at.Add(time.Second)}
	require.NoError(t, log.Append(ctx, first))
	require.NoError(t, log.Append(ctx, second))
	require.NoError(t, log.Append(ctx, first), "duplicates are kept")

	entries, err := log.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []harvest.Capture{first, second, first}, entries)

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				err := log.Append(ctx, harvest.Capture{Email: fmt.Sprintf("w%v-%v", w, i), CapturedAt: at})
				if err != nil {
					t.Error(err)
				}
			}
		}(w)
	}
	wg.Wait()

	n, err = log.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 3+writers*perWriter, n)

	// each writer sees its own submissions in order
	entries, err = log.List(ctx)
	require.NoError(t, err)
	next := make(map[string]int)
	for _, e := range entries[3:] {
		var w, i int
		_, err := fmt.Sscanf(e.Email, "w%d-%d", &w, &i)
		require.NoError(t, err)
		key := fmt.Sprint(w)
		require.Equal(t, next[key], i, "writer %v out of order", w)
		next[key]++
	}
}
