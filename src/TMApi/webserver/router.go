package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/truthmint-labs/truthmint/src/TMApi/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "x-api-key"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	aiH := NewAI(deps.Generator)
	truthH := NewTruth(deps.Engine, deps.Ledger, deps.Oracle)
	nftH := NewNFT(deps.NFTs)
	authH := NewAuth(deps.Keys)

	api := r.Group("/api")
	{
		api.POST("/ai/generate", aiH.Generate)

		api.POST("/truth/verify", truthH.Verify)
		api.POST("/truth/legal", truthH.Legal)
		api.GET("/truth/accounting/:asset", truthH.Accounting)
		api.GET("/truth/proof/:id", truthH.Proof)
		api.GET("/truth/history", truthH.History)
		api.GET("/truth/sources", truthH.Sources)

		api.POST("/nft/metadata", nftH.Create)
		api.GET("/nft/metadata/:tokenId", nftH.Metadata)
		api.GET("/nft/all", nftH.All)

		api.POST("/auth/generate-key", authH.GenerateKey)
	}

	// Paid surface: every request must carry an issued key.
	audit := api.Group("/audit")
	audit.Use(APIKeyRequired(deps.Keys))
	{
		auditH := NewAudit(deps.Chain)
		audit.POST("/solvency", auditH.Solvency)
		audit.POST("/transactions", auditH.Transactions)
	}
}
