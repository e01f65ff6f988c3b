// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"net/http"

	"github.com/rustchain/blockchain/foundation/antiquity/state"
	"github.com/rustchain/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of private node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latestBlock := h.State.RetrieveLatestBlock()

	status := struct {
		LatestBlockHash   string `json:"latest_block_hash"`
		LatestBlockHeight uint64 `json:"latest_block_height"`
		PendingProofs     int    `json:"pending_proofs"`
	}{
		LatestBlockHash:   latestBlock.Hash,
		LatestBlockHeight: latestBlock.Height,
		PendingProofs:     h.State.RetrieveStatus().PendingProofs,
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// SealBlock signals the worker to seal the current window without waiting
// for the ticker.
func (h Handlers) SealBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("seal block", "traceid", v.TraceID)

	h.State.Worker.SignalSealBlock()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "block sealing signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
