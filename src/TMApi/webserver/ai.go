package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/truthmint-labs/truthmint/src/TMApi/truth"
)

type AI struct {
	gen *truth.Generator
	pol *bluemonday.Policy
}

func NewAI(gen *truth.Generator) AI {
	return AI{gen: gen, pol: bluemonday.StrictPolicy()}
}

func (h AI) Generate(c *gin.Context) {
	var req struct {
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}
	topic := strings.TrimSpace(h.pol.Sanitize(req.Topic))
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}
	c.JSON(http.StatusOK, h.gen.GenerateClaim(c.Request.Context(), topic))
}
