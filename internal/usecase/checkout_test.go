//go:build unit

package usecase_test

import (
	"context"
	"testing"

	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/usecase"
	"storefront-cart/tests/common/builder"
	usecasemock "storefront-cart/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCheckout(t *testing.T) (*usecase.Checkout, *usecase.CartStore, *usecasemock.MockCouponValidator, *usecasemock.MockOrderSubmitter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store, validator, _ := newTestStore(t)
	orders := usecasemock.NewMockOrderSubmitter(ctrl)
	return usecase.NewCheckout(store, orders), store, validator, orders
}

func TestCheckoutSubmit(t *testing.T) {
	drill := builder.NewProductBuilder().Build()

	t.Run("rejects an empty cart", func(t *testing.T) {
		checkout, _, _, _ := newCheckout(t)

		_, err := checkout.Submit(context.Background())

		require.ErrorIs(t, err, errs.ErrCartEmpty)
	})

	t.Run("rejects a non-positive total", func(t *testing.T) {
		checkout, store, _, _ := newCheckout(t)
		store.AddToCart(drill)
		store.UpdateQuantity(drill.ID, 0)

		_, err := checkout.Submit(context.Background())

		require.ErrorIs(t, err, errs.ErrTotalNotPositive)
	})

	t.Run("submits the snapshot and clears the cart", func(t *testing.T) {
		checkout, store, validator, orders := newCheckout(t)
		store.AddToCart(drill)
		applyPercentage(t, store, validator, "SAVE20", 20)

		orderID := uuid.New()
		orders.EXPECT().Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, draft usecase.OrderDraft) (uuid.UUID, error) {
				require.Len(t, draft.Contents, 1)
				assert.Equal(t, drill.ID, draft.Contents[0].ProductID)
				assert.Equal(t, 0.8*drill.Price, draft.Total)
				assert.Equal(t, 0.2*drill.Price, draft.Discount)
				assert.Equal(t, "SAVE20", draft.CouponName)
				return orderID, nil
			})

		result, err := checkout.Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, orderID, result.OrderID)
		assert.Equal(t, 0.8*drill.Price, result.Total)
		assert.Equal(t, 0.2*drill.Price, result.Discount)
		assert.True(t, store.Snapshot().IsEmpty())
	})

	t.Run("a failed submission leaves the cart intact", func(t *testing.T) {
		checkout, store, _, orders := newCheckout(t)
		store.AddToCart(drill)

		orders.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, assert.AnError)

		_, err := checkout.Submit(context.Background())

		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, store.Snapshot().IsEmpty())
	})
}
