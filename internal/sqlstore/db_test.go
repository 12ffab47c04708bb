package sqlstore_test

import (
	"context"
	"testing"

	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/internal/sqlstore"
	"github.com/andrebq/hijackbox/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	db, cleanup := testutil.AcquireSQLStore(context.Background(), t, "users")
	defer cleanup()
	testutil.IdentityStoreContract(t, db.Users())
}

func TestCaptures(t *testing.T) {
	db, cleanup := testutil.AcquireSQLStore(context.Background(), t, "captures")
	defer cleanup()
	testutil.HarvestLogContract(t, db.Captures())
}

func TestInMemoryKeepsState(t *testing.T) {
	ctx := context.Background()
	db, err := sqlstore.Open(ctx, "")
	require.NoError(t, err)
	defer db.Close()

	rec := identity.UserRecord{ID: "abc", Email: "a@x.com", Password: "p1"}
	require.NoError(t, db.Users().Put(ctx, rec))
	got, found, err := db.Users().Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, rec, got)
}
