//go:build unit

package state_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/infra/state"
	"storefront-cart/internal/pkg/clock"
	"storefront-cart/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) (*state.FileRepository, string, *clock.MockClock) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart-state.json")
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return state.NewFileRepository(path, clk, logger), path, clk
}

func TestFileRepository(t *testing.T) {
	t.Run("load reports absent when the file does not exist", func(t *testing.T) {
		repo, _, _ := newFileRepo(t)

		st, ok, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, st.IsEmpty())
	})

	t.Run("save then load round-trips the state", func(t *testing.T) {
		repo, _, _ := newFileRepo(t)
		saved := builder.NewStateBuilder().
			WithLine(builder.NewProductBuilder().BuildLine(2)).
			WithCoupon(cart.Coupon{Name: "SAVE10", Percentage: 10, Message: "Discount applied"}).
			WithDiscount(10000).
			WithTotal(90000).
			Build()

		require.NoError(t, repo.Save(context.Background(), saved))

		loaded, ok, err := repo.Load(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(saved, loaded))
	})

	t.Run("the saved document records the save time", func(t *testing.T) {
		repo, path, clk := newFileRepo(t)
		clk.Set(time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC))

		require.NoError(t, repo.Save(context.Background(), cart.NewState()))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc struct {
			SavedAt time.Time `json:"saved_at"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, clk.Now(), doc.SavedAt)
	})

	t.Run("malformed persisted data is discarded, not fatal", func(t *testing.T) {
		repo, path, _ := newFileRepo(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		st, ok, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, st.IsEmpty())
	})

	t.Run("a later save overwrites an earlier one", func(t *testing.T) {
		repo, _, _ := newFileRepo(t)
		first := builder.NewStateBuilder().
			WithLine(builder.NewProductBuilder().BuildLine(1)).
			WithTotal(50000).
			Build()
		second := builder.NewStateBuilder().Build()

		require.NoError(t, repo.Save(context.Background(), first))
		require.NoError(t, repo.Save(context.Background(), second))

		loaded, ok, err := repo.Load(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(second, loaded))
	})
}

func TestMemoryRepository(t *testing.T) {
	t.Run("starts absent", func(t *testing.T) {
		repo := state.NewMemoryRepository()

		_, ok, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round-trips the state", func(t *testing.T) {
		repo := state.NewMemoryRepository()
		saved := builder.NewStateBuilder().
			WithLine(builder.NewProductBuilder().BuildLine(3)).
			WithTotal(150000).
			Build()

		require.NoError(t, repo.Save(context.Background(), saved))

		loaded, ok, err := repo.Load(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(saved, loaded))
	})
}
