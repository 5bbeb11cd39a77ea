package usecase

import (
	"context"

	"storefront-cart/internal/pkg/errs"

	"github.com/google/uuid"
)

type CheckoutResult struct {
	OrderID  uuid.UUID
	Total    float64
	Discount float64
}

// Checkout hands the finalized cart snapshot to the order submission
// collaborator and clears the cart once the order is accepted. The snapshot
// is taken once so the submitted payload cannot change mid-flight.
type Checkout struct {
	store  *CartStore
	orders OrderSubmitter
}

func NewCheckout(store *CartStore, orders OrderSubmitter) *Checkout {
	return &Checkout{store: store, orders: orders}
}

func (c *Checkout) Submit(ctx context.Context) (*CheckoutResult, error) {
	snap := c.store.Snapshot()
	if snap.IsEmpty() {
		return nil, errs.ErrCartEmpty
	}
	if snap.Total <= 0 {
		return nil, errs.ErrTotalNotPositive
	}

	draft := OrderDraft{
		Contents:   snap.Contents,
		Total:      snap.Total,
		Discount:   snap.Discount,
		CouponName: snap.Coupon.Name,
	}
	orderID, err := c.orders.Submit(ctx, draft)
	if err != nil {
		return nil, errs.Wrap(err, "failed to submit order")
	}

	c.store.ClearCart()
	return &CheckoutResult{
		OrderID:  orderID,
		Total:    draft.Total,
		Discount: draft.Discount,
	}, nil
}
