package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "storefront-cart/internal/handler/dto/request"
	resdto "storefront-cart/internal/handler/dto/response"
	"storefront-cart/internal/handler/httperr"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/pkg/ptr"
	"storefront-cart/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	store    *usecase.CartStore
	checkout *usecase.Checkout
}

func NewCartHandler(store *usecase.CartStore, checkout *usecase.Checkout) *CartHandler {
	return &CartHandler{store: store, checkout: checkout}
}

func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromState(h.store.Snapshot()))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	outcome := h.store.AddToCart(req.ToSnapshot())
	c.JSON(http.StatusOK, resdto.MutationResponse{
		Outcome: string(outcome),
		Cart:    resdto.FromState(h.store.Snapshot()),
	})
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}
	var req reqdto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	outcome := h.store.UpdateQuantity(productID, ptr.Deref(req.Quantity, 0))
	c.JSON(http.StatusOK, resdto.MutationResponse{
		Outcome: string(outcome),
		Cart:    resdto.FromState(h.store.Snapshot()),
	})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}
	outcome := h.store.RemoveFromCart(productID)
	c.JSON(http.StatusOK, resdto.MutationResponse{
		Outcome: string(outcome),
		Cart:    resdto.FromState(h.store.Snapshot()),
	})
}

func (h *CartHandler) Clear(c *gin.Context) {
	h.store.ClearCart()
	c.JSON(http.StatusOK, resdto.FromState(h.store.Snapshot()))
}

// ApplyCoupon forwards lookup failures as 502: the store performed no state
// change and the UI owns the user-facing messaging.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.store.ApplyCoupon(c.Request.Context(), ptr.Deref(req.CouponName, "")); err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Coupon lookup failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(h.store.Snapshot()))
}

func (h *CartHandler) Checkout(c *gin.Context) {
	result, err := h.checkout.Submit(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCartEmpty), errors.Is(err, errs.ErrTotalNotPositive):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is not ready for checkout", nil)
		default:
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Order submission failed", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
