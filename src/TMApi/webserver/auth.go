package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/truthmint-labs/truthmint/src/TMApi/data"
)

type Auth struct {
	keys data.KeyStore
}

func NewAuth(keys data.KeyStore) Auth {
	return Auth{keys: keys}
}

// GenerateKey mints a demo API key and registers it with the key store.
// Keys are opaque bearer tokens; there is no account behind them.
func (h Auth) GenerateKey(c *gin.Context) {
	key := "sk_live_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := h.keys.Add(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "apiKey": key})
}
