// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/rustchain/blockchain/app/services/node/handlers/v1/private"
	"github.com/rustchain/blockchain/app/services/node/handlers/v1/public"
	"github.com/rustchain/blockchain/foundation/antiquity/state"
	"github.com/rustchain/blockchain/foundation/events"
	"github.com/rustchain/blockchain/foundation/nameservice"
	"github.com/rustchain/blockchain/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/status", pbl.Status)
	app.Handle(http.MethodGet, version, "/balances/list", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:wallet", pbl.Balances)
	app.Handle(http.MethodGet, version, "/blocks/list/:from/:to", pbl.BlocksByHeight)
	app.Handle(http.MethodGet, version, "/challenge", pbl.Challenge)
	app.Handle(http.MethodPost, version, "/proof/submit", pbl.SubmitProof)
	app.Handle(http.MethodPost, version, "/entropy/verify", pbl.VerifyEntropy)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodPost, version, "/node/block/seal", prv.SealBlock)
}
