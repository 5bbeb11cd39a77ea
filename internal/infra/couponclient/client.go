package couponclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"storefront-cart/internal/infra"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/usecase"
)

// Client talks to the coupon validation collaborator. One round trip per
// lookup, no retry: failures propagate to the caller unchanged.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg config.CouponConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type applyCouponRequest struct {
	CouponName string `json:"coupon_name"`
}

func (c *Client) Validate(ctx context.Context, code string) (*usecase.CouponResult, error) {
	body, err := json.Marshal(applyCouponRequest{CouponName: code})
	if err != nil {
		return nil, infra.WrapInfraErr(c.logger, infra.KindBadResponse, "failed to encode coupon request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/coupons/apply-coupon", bytes.NewReader(body))
	if err != nil {
		return nil, infra.WrapInfraErr(c.logger, infra.KindCollaboratorFailure, "failed to build coupon request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, infra.WrapInfraErr(c.logger, infra.KindCollaboratorFailure, "coupon lookup request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, infra.WrapInfraErr(c.logger, infra.KindCollaboratorFailure, "coupon validator returned "+resp.Status, nil)
	}

	var result usecase.CouponResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, infra.WrapInfraErr(c.logger, infra.KindBadResponse, "failed to decode coupon response", err)
	}
	return &result, nil
}
