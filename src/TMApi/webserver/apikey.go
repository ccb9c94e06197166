package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truthmint-labs/truthmint/src/TMApi/data"
)

// APIKeyRequired rejects requests whose x-api-key header is missing or
// was never issued. 402 mirrors the pay-per-call framing of the audit
// surface.
func APIKeyRequired(keys data.KeyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" || !keys.Has(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":   "Payment Required",
				"message": "A valid API key is required to access audit endpoints",
			})
			return
		}
		c.Next()
	}
}
