package response

import (
	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/usecase"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Inventory int     `json:"inventory"`
	Quantity  int     `json:"quantity"`
}

type CouponResponse struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

type CartResponse struct {
	Contents []CartLineResponse `json:"contents"`
	Coupon   CouponResponse     `json:"coupon"`
	Discount float64            `json:"discount"`
	Total    float64            `json:"total"`
}

// MutationResponse pairs the resulting cart with what the operation did,
// so callers can distinguish silent no-ops without re-reading state.
type MutationResponse struct {
	Outcome string       `json:"outcome"`
	Cart    CartResponse `json:"cart"`
}

type CheckoutResponse struct {
	OrderID  uuid.UUID `json:"order_id"`
	Total    float64   `json:"total"`
	Discount float64   `json:"discount"`
}

func FromState(st cart.State) CartResponse {
	lines := make([]CartLineResponse, 0, len(st.Contents))
	for _, l := range st.Contents {
		lines = append(lines, CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Image:     l.Image,
			Price:     l.Price,
			Inventory: l.Inventory,
			Quantity:  l.Quantity,
		})
	}
	return CartResponse{
		Contents: lines,
		Coupon: CouponResponse{
			Name:       st.Coupon.Name,
			Percentage: st.Coupon.Percentage,
			Message:    st.Coupon.Message,
		},
		Discount: st.Discount,
		Total:    st.Total,
	}
}

func FromCheckoutResult(res *usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		OrderID:  res.OrderID,
		Total:    res.Total,
		Discount: res.Discount,
	}
}
