// Package gatewaytest holds a conformance suite every persistence.Gateway must pass.
package gatewaytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/tiermaker/internal/persistence"
)

// Run exercises gw. The gateway must start empty.
func Run(t *testing.T, gw persistence.Gateway) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := gw.Get(ctx, "tierMaker_missing")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, gw.Put(ctx, "tierMaker_one", []byte(`{"title":"one"}`)))

		blob, err := gw.Get(ctx, "tierMaker_one")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"one"}`, string(blob))
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, gw.Put(ctx, "tierMaker_one", []byte(`{"title":"uno"}`)))

		blob, err := gw.Get(ctx, "tierMaker_one")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"uno"}`, string(blob))
	})

	t.Run("keys filters by prefix", func(t *testing.T) {
		require.NoError(t, gw.Put(ctx, "tierMaker_two", []byte(`{}`)))
		require.NoError(t, gw.Put(ctx, "settings", []byte(`{}`)))

		keys, err := gw.Keys(ctx, persistence.KeyPrefix)
		require.NoError(t, err)
		assert.Equal(t, []string{"tierMaker_one", "tierMaker_two"}, keys)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, gw.Delete(ctx, "tierMaker_two"))

		_, err := gw.Get(ctx, "tierMaker_two")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
		assert.ErrorIs(t, gw.Delete(ctx, "tierMaker_two"), persistence.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.Error(t, gw.Put(cctx, "tierMaker_three", []byte(`{}`)))
		_, err := gw.Get(cctx, "tierMaker_one")
		assert.Error(t, err)
	})
}
