package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/truthmint-labs/truthmint/src/TMApi/config"
	"github.com/truthmint-labs/truthmint/src/TMApi/data"
	"github.com/truthmint-labs/truthmint/src/TMApi/truth"
)

// Deps carries the services the handlers run on. Ledger and Chain are
// nil when the node is not configured for on-chain access; the affected
// endpoints degrade instead of the server refusing to start.
type Deps struct {
	Generator *truth.Generator
	Engine    *truth.Engine
	Ledger    truth.Ledger
	Oracle    truth.PriceOracle
	Chain     BalanceReader
	Keys      data.KeyStore
	NFTs      *data.NFTStore
}

func New(cfg config.Config, deps Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, deps)
	return g
}
