package request

import "storefront-cart/internal/domain/cart"

// AddItemRequest carries the catalog product snapshot trusted at add time.
type AddItemRequest struct {
	ID         int     `json:"id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	Inventory  int     `json:"inventory"`
	Image      string  `json:"image"`
	CategoryID int     `json:"categoryId"`
}

func (r AddItemRequest) ToSnapshot() cart.ProductSnapshot {
	return cart.ProductSnapshot{
		ID:         r.ID,
		Name:       r.Name,
		Price:      r.Price,
		Inventory:  r.Inventory,
		Image:      r.Image,
		CategoryID: r.CategoryID,
	}
}

// Quantity is a pointer so an explicit 0 passes binding. The store performs
// no inventory or negativity validation on it.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CouponName is a pointer so an empty code can be sent to the validator.
type ApplyCouponRequest struct {
	CouponName *string `json:"coupon_name" binding:"required"`
}
