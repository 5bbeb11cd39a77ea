package usecase

import (
	"context"

	"storefront-cart/internal/domain/cart"

	"github.com/google/uuid"
)

// CouponResult is the validator's verdict on a coupon code. Empty Name and
// zero Percentage signal "not applied"; the store does not judge validity
// itself.
type CouponResult struct {
	Name       string  `json:"name"`
	Message    string  `json:"message"`
	Percentage float64 `json:"percentage"`
}

// CouponValidator is the external coupon validation collaborator. A failed
// lookup returns an error; the caller decides how to surface it.
type CouponValidator interface {
	Validate(ctx context.Context, code string) (*CouponResult, error)
}

// StateRepository persists the full cart state under a fixed key.
// Load reports ok=false when nothing (or nothing usable) is stored.
type StateRepository interface {
	Load(ctx context.Context) (cart.State, bool, error)
	Save(ctx context.Context, state cart.State) error
}

// OrderDraft is the finalized cart snapshot handed to the order submission
// collaborator before payment.
type OrderDraft struct {
	Contents   []cart.Line `json:"contents"`
	Total      float64     `json:"total"`
	Discount   float64     `json:"discount"`
	CouponName string      `json:"coupon_name"`
}

type OrderSubmitter interface {
	Submit(ctx context.Context, draft OrderDraft) (uuid.UUID, error)
}
