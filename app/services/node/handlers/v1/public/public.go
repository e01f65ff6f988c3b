// Package public maintains the group of handlers for public node access.
package public

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rustchain/blockchain/business/web/errs"
	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/entropy"
	"github.com/rustchain/blockchain/foundation/antiquity/state"
	"github.com/rustchain/blockchain/foundation/events"
	"github.com/rustchain/blockchain/foundation/nameservice"
	"github.com/rustchain/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitProof submits a signed mining proof for the current block window.
func (h Handlers) SubmitProof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ap appProof
	if err := web.Decode(r, &ap); err != nil {
		return err
	}

	sp, err := toSignedProof(ap)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit proof", "traceid", v.TraceID, "wallet", sp.Wallet, "hardware", sp.Hardware.Model, "age", sp.Hardware.AgeYears)

	result, err := h.State.SubmitSignedProof(sp)
	if err != nil {
		return errs.NewTrusted(err, submitStatusCode(err))
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// submitStatusCode maps a proof rejection to an HTTP status code.
func submitStatusCode(err error) int {
	switch {
	case errors.Is(err, engine.ErrDuplicateSubmission), errors.Is(err, engine.ErrHardwareAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, engine.ErrBlockWindowClosed), errors.Is(err, engine.ErrBlockFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Status returns the state of the current block window.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := h.State.RetrieveStatus()
	return web.Respond(ctx, w, status, http.StatusOK)
}

// Balances returns the current balances for all wallets.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	wallet := web.Param(r, "wallet")

	walletBalances := h.State.RetrieveBalances(wallet)

	bals := make([]balance, 0, len(walletBalances))
	for w, b := range walletBalances {
		bals = append(bals, balance{
			Wallet:  w,
			Name:    h.NS.Lookup(w),
			Balance: b,
		})
	}
	sort.Slice(bals, func(i, j int) bool { return bals[i].Wallet < bals[j].Wallet })

	resp := balances{
		LatestBlock: h.State.RetrieveLatestBlock().Hash,
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlocksByHeight returns the sealed blocks in the specified range.
func (h Handlers) BlocksByHeight(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := strconv.ParseUint(web.Param(r, "from"), 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	to, err := strconv.ParseUint(web.Param(r, "to"), 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	blocks, err := h.State.QueryBlocksByHeight(from, to)
	if err != nil {
		return err
	}

	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Challenge generates a fresh timing challenge for a miner to execute.
func (h Handlers) Challenge(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	challenge := h.State.GenerateChallenge()
	return web.Respond(ctx, w, challenge, http.StatusOK)
}

// VerifyEntropy runs the deep entropy verification on a hardware proof.
func (h Handlers) VerifyEntropy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req struct {
		HardwareID string        `json:"hardware_id"`
		Proof      entropy.Proof `json:"proof"`
	}
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	result := h.State.VerifyEntropy(req.Proof, req.HardwareID)

	return web.Respond(ctx, w, result, http.StatusOK)
}
