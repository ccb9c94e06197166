package webserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/truthmint-labs/truthmint/src/TMApi/truth"
	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

const historyLimit = 10

type Truth struct {
	engine *truth.Engine
	ledger truth.Ledger
	oracle truth.PriceOracle
	pol    *bluemonday.Policy
}

func NewTruth(engine *truth.Engine, ledger truth.Ledger, oracle truth.PriceOracle) Truth {
	return Truth{engine: engine, ledger: ledger, oracle: oracle, pol: bluemonday.StrictPolicy()}
}

func (h Truth) Verify(c *gin.Context) {
	var req struct {
		Claim    string `json:"claim" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Claim is required"})
		return
	}
	claim := strings.TrimSpace(h.pol.Sanitize(req.Claim))
	if claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Claim is required"})
		return
	}

	rec := h.engine.Verify(c.Request.Context(), claim, types.ParseCategory(req.Category))
	c.JSON(http.StatusOK, gin.H{"success": true, "verification": rec})
}

// Legal anchors a client-computed document hash. The claim text carries
// the file name; the hash replaces auxData after anchoring so the
// on-chain record keeps the "Document Anchored" marker.
func (h Truth) Legal(c *gin.Context) {
	var req struct {
		DocumentHash string `json:"documentHash" binding:"required"`
		FileName     string `json:"fileName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documentHash and fileName are required"})
		return
	}
	fileName := strings.TrimSpace(h.pol.Sanitize(req.FileName))

	rec := h.engine.Verify(c.Request.Context(), "Document Integrity: "+fileName, types.CategoryLegal)
	rec.AuxData = req.DocumentHash

	c.JSON(http.StatusOK, gin.H{"success": true, "verification": rec})
}

func (h Truth) Accounting(c *gin.Context) {
	asset := strings.ToUpper(c.Param("asset"))
	price, err := h.oracle.GetPrice(c.Request.Context(), asset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset":     asset,
		"price":     price,
		"source":    "Flare FTSO (Coston2)",
		"timestamp": time.Now().UnixMilli(),
	})
}

func (h Truth) Proof(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "TruthHub not connected"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Proof not found"})
		return
	}
	proof, err := h.ledger.GetProof(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	// The contract returns a zero struct for unknown ids.
	if proof.Claim == "" {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Proof not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "proof": proof})
}

func (h Truth) History(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TruthHub not connected"})
		return
	}
	count, err := h.ledger.ProofCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start := uint64(0)
	if count > historyLimit {
		start = count - historyLimit
	}

	history := make([]gin.H, 0, historyLimit)
	for i := count; i > start; i-- {
		id := i - 1
		proof, err := h.ledger.GetProof(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		query := proof.Claim
		if len(query) > 50 {
			query = query[:50] + "..."
		}
		value, status := "Failed", "failed"
		if proof.IsVerified {
			value, status = "Verified", "success"
		}
		history = append(history, gin.H{
			"id":        id,
			"query":     query,
			"value":     value,
			"timestamp": time.Unix(proof.Timestamp, 0).UTC().Format(time.RFC3339),
			"status":    status,
			"hash":      fmt.Sprintf("Proof #%d", id),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

func (h Truth) Sources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sources": []gin.H{
			{"name": "FTSO", "description": "Flare Time Series Oracle - Crypto price feeds", "available": true},
			{"name": "FDC", "description": "Flare Data Connector - External data verification", "available": true},
			{"name": "HYBRID", "description": "Combined FTSO + FDC verification", "available": true},
		},
	})
}
