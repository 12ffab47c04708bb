package identity_test

import (
	"bytes"
	"testing"

	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	tk, err := identity.NewToken(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0, 1, 2, 3}))
	require.NoError(t, err)
	require.Equal(t, identity.Token("deadbeef00010203"), tk)

	_, err = identity.NewToken(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err, "short entropy must fail")

	a, err := identity.NewToken(nil)
	require.NoError(t, err)
	b, err := identity.NewToken(nil)
	require.NoError(t, err)
	require.Len(t, a.String(), 16)
	require.NotEqual(t, a, b)
}

func TestMemoryStore(t *testing.T) {
	store, err := identity.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	testutil.IdentityStoreContract(t, store)
}
