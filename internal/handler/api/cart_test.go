//go:build unit

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"storefront-cart/internal/handler/api"
	resdto "storefront-cart/internal/handler/dto/response"
	"storefront-cart/internal/infra/state"
	"storefront-cart/internal/usecase"
	"storefront-cart/tests/common/builder"
	"storefront-cart/tests/common/httptest"
	"storefront-cart/tests/common/testutil"
	usecasemock "storefront-cart/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockCouponValidator
	mockOrders    *usecasemock.MockOrderSubmitter
	store         *usecase.CartStore
	handler       *api.CartHandler
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockCouponValidator(s.mockCtrl)
	s.mockOrders = usecasemock.NewMockOrderSubmitter(s.mockCtrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = usecase.NewCartStore(state.NewMemoryRepository(), s.mockValidator, logger)
	s.handler = api.NewCartHandler(s.store, usecase.NewCheckout(s.store, s.mockOrders))

	// Setup routes
	s.router.GET("/api/cart", s.handler.Get)
	s.router.DELETE("/api/cart", s.handler.Clear)
	s.router.POST("/api/cart/items", s.handler.AddItem)
	s.router.PATCH("/api/cart/items/:productId", s.handler.UpdateQuantity)
	s.router.DELETE("/api/cart/items/:productId", s.handler.RemoveItem)
	s.router.POST("/api/cart/coupon", s.handler.ApplyCoupon)
	s.router.POST("/api/cart/checkout", s.handler.Checkout)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

var errCollaborator = errors.New("collaborator unavailable")

func (s *CartHandlerTestSuite) addDrill() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/cart/items",
		builder.NewProductBuilder().BuildAddRequestDTO(), "")
	s.Require().Equal(http.StatusOK, rec.Code)
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CartHandlerTestSuite) TestGet() {
	s.Run("success: returns the empty cart", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.CartResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Empty(body.Contents)
		s.Zero(body.Total)
	})
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/api/cart/items"

	s.Run("success: returns 200 with outcome and cart", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			builder.NewProductBuilder().BuildAddRequestDTO(), "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(string(usecase.AddOutcomeAdded), body.Outcome)
		s.Require().Len(body.Cart.Contents, 1)
		s.Equal(1, body.Cart.Contents[0].Quantity)
	})

	s.Run("success: repeated add reports the increment", func() {
		s.addDrill()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			builder.NewProductBuilder().BuildAddRequestDTO(), "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(string(usecase.AddOutcomeIncremented), body.Outcome)
	})

	// Validation boundary cases
	validation := []struct {
		name       string
		mutate     func(m map[string]any)
		expectCode int
	}{
		{name: "missing field: id (required)", mutate: testutil.Field("id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: price (required)", mutate: testutil.Field("price", nil), expectCode: http.StatusBadRequest},
		{name: "optional field: inventory may be omitted", mutate: testutil.Field("inventory", nil), expectCode: http.StatusOK},
		{name: "optional field: image may be omitted", mutate: testutil.Field("image", nil), expectCode: http.StatusOK},
	}

	for _, tc := range validation {
		s.Run(tc.name, func() {
			body := map[string]any{
				"id":         4,
				"name":       "Circular Saw",
				"price":      154990,
				"inventory":  5,
				"image":      "saw.jpg",
				"categoryId": 1,
			}
			tc.mutate(body)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

// ================================================================================
// TestUpdateQuantity
// ================================================================================

func (s *CartHandlerTestSuite) TestUpdateQuantity() {
	s.Run("success: sets the quantity verbatim", func() {
		s.addDrill()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/cart/items/1",
			map[string]any{"quantity": 4}, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(string(usecase.UpdateOutcomeUpdated), body.Outcome)
		s.Equal(4, body.Cart.Contents[0].Quantity)
	})

	s.Run("success: explicit zero quantity passes binding", func() {
		s.addDrill()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/cart/items/1",
			map[string]any{"quantity": 0}, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(0, body.Cart.Contents[0].Quantity)
	})

	s.Run("success: unknown product reports not_found without changes", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/cart/items/999",
			map[string]any{"quantity": 4}, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(string(usecase.UpdateOutcomeNotFound), body.Outcome)
	})

	s.Run("validation: missing quantity returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/cart/items/1",
			map[string]any{}, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("validation: non-numeric product id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/cart/items/abc",
			map[string]any{"quantity": 4}, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestRemoveItem
// ================================================================================

func (s *CartHandlerTestSuite) TestRemoveItem() {
	s.Run("success: removing the last line clears the cart", func() {
		s.addDrill()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/cart/items/1", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(string(usecase.RemoveOutcomeCleared), body.Outcome)
		s.Empty(body.Cart.Contents)
	})

	s.Run("success: unknown product reports not_found", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/cart/items/999", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.MutationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(string(usecase.RemoveOutcomeNotFound), body.Outcome)
	})
}

// ================================================================================
// TestApplyCoupon
// ================================================================================

func (s *CartHandlerTestSuite) TestApplyCoupon() {
	url := "/api/cart/coupon"

	s.Run("success: installs the coupon and recomputes totals", func() {
		s.addDrill()
		s.mockValidator.EXPECT().Validate(gomock.Any(), "DISCOUNT10").
			Return(&usecase.CouponResult{Name: "DISCOUNT10", Message: "Discount applied", Percentage: 10}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_name": "DISCOUNT10"}, "")

		s.Equal(http.StatusOK, rec.Code)
		var body resdto.CartResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal("DISCOUNT10", body.Coupon.Name)
		s.Equal(float64(5000), body.Discount)
		s.Equal(float64(45000), body.Total)
	})

	s.Run("failure: lookup error returns 502", func() {
		s.mockValidator.EXPECT().Validate(gomock.Any(), "BROKEN").
			Return(nil, errCollaborator)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_name": "BROKEN"}, "")

		s.Equal(http.StatusBadGateway, rec.Code)
	})

	s.Run("validation: missing coupon_name returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{}, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *CartHandlerTestSuite) TestCheckout() {
	url := "/api/cart/checkout"

	s.Run("success: returns 201 and empties the cart", func() {
		s.addDrill()
		orderID := uuid.New()
		s.mockOrders.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(orderID, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		s.Equal(http.StatusCreated, rec.Code)
		var body resdto.CheckoutResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(orderID, body.OrderID)
		s.Equal(float64(50000), body.Total)
		s.True(s.store.Snapshot().IsEmpty())
	})

	s.Run("failure: empty cart returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("failure: submission error returns 502 and keeps the cart", func() {
		s.addDrill()
		s.mockOrders.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errCollaborator)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		s.Equal(http.StatusBadGateway, rec.Code)
		s.False(s.store.Snapshot().IsEmpty())
	})
}
