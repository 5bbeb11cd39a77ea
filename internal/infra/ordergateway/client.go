package ordergateway

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-cart/internal/infra"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/usecase"

	"github.com/google/uuid"
)

// Client posts the finalized order draft to the order submission
// collaborator, which owns persistence and the payment flow from there.
type Client struct {
	submitURL string
	http      *http.Client
	logger    *slog.Logger
}

func New(cfg config.OrderConfig, logger *slog.Logger) *Client {
	return &Client{
		submitURL: cfg.SubmitURL,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type submitResponse struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (c *Client) Submit(ctx context.Context, draft usecase.OrderDraft) (uuid.UUID, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return uuid.Nil, infra.WrapInfraErr(c.logger, infra.KindBadResponse, "failed to encode order draft", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(body))
	if err != nil {
		return uuid.Nil, infra.WrapInfraErr(c.logger, infra.KindCollaboratorFailure, "failed to build order request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return uuid.Nil, infra.WrapInfraErr(c.logger, infra.KindCollaboratorFailure, "order submission request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return uuid.Nil, infra.WrapInfraErr(c.logger, infra.KindCollaboratorFailure, "order collaborator returned "+resp.Status, nil)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return uuid.Nil, infra.WrapInfraErr(c.logger, infra.KindBadResponse, "failed to decode order response", err)
	}
	return out.OrderID, nil
}
