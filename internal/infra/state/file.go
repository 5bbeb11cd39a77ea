package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/pkg/clock"
)

// persistedState is the on-disk document. SavedAt is informational only;
// there is no schema versioning, malformed documents are treated as absent.
type persistedState struct {
	SavedAt time.Time  `json:"saved_at"`
	State   cart.State `json:"state"`
}

// FileRepository stores the cart state as a JSON document on disk, the
// server-side analogue of the browser's local storage. Last write wins.
type FileRepository struct {
	path   string
	clock  clock.Clock
	logger *slog.Logger
}

func NewFileRepository(path string, clk clock.Clock, logger *slog.Logger) *FileRepository {
	return &FileRepository{path: path, clock: clk, logger: logger}
}

func (r *FileRepository) Load(_ context.Context) (cart.State, bool, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cart.NewState(), false, nil
		}
		return cart.NewState(), false, infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to read state file", err)
	}

	var doc persistedState
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Malformed persisted data is discarded, never fatal.
		r.logger.Warn("discarding malformed persisted cart state", "path", r.path, "error", err)
		return cart.NewState(), false, nil
	}
	if doc.State.Contents == nil {
		doc.State.Contents = []cart.Line{}
	}
	return doc.State, true, nil
}

func (r *FileRepository) Save(_ context.Context, st cart.State) error {
	doc := persistedState{
		SavedAt: r.clock.Now(),
		State:   st,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to encode state", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to write state file", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to replace state file", err)
	}
	return nil
}
