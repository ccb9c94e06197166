package webserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truthmint-labs/truthmint/src/TMApi/data"
	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

type NFT struct {
	store *data.NFTStore
}

func NewNFT(store *data.NFTStore) NFT {
	return NFT{store: store}
}

// Create builds ERC-721 metadata for an anchored proof and returns it as
// a base64 data URI, so tokens need no external hosting.
func (h NFT) Create(c *gin.Context) {
	var req struct {
		ProofID      string                   `json:"proofId" binding:"required"`
		Claim        string                   `json:"claim" binding:"required"`
		Topic        string                   `json:"topic"`
		Category     string                   `json:"category"`
		Verification types.VerificationRecord `json:"verification"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Topic == "" {
		req.Topic = "General"
	}
	if req.Category == "" {
		req.Category = string(types.CategoryGeneral)
	}
	status := "Unverified"
	if req.Verification.IsVerified {
		status = "Verified"
	}

	meta := types.NFTMetadata{
		Name:        "TruthMint Knowledge #" + req.ProofID,
		Description: req.Claim,
		Image:       "https://api.dicebear.com/7.x/shapes/svg?seed=" + req.ProofID,
		ExternalURL: "https://truthmint.app/nft/" + req.ProofID,
		Attributes: []types.NFTAttribute{
			{TraitType: "Topic", Value: req.Topic},
			{TraitType: "Category", Value: req.Category},
			{TraitType: "Verification Status", Value: status},
			{TraitType: "Confidence Score", Value: req.Verification.ConfidenceScore, DisplayType: "number"},
			{TraitType: "Data Source", Value: req.Verification.DataSource},
			{TraitType: "Proof ID", Value: req.ProofID},
		},
	}
	h.store.Put(req.ProofID, meta)

	raw, err := json.Marshal(meta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metadata": meta,
		"tokenURI": "data:application/json;base64," + base64.StdEncoding.EncodeToString(raw),
	})
}

func (h NFT) Metadata(c *gin.Context) {
	meta, ok := h.store.Get(c.Param("tokenId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "NFT not found"})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h NFT) All(c *gin.Context) {
	type minted struct {
		TokenID string `json:"tokenId"`
		types.NFTMetadata
	}
	all := h.store.All()
	nfts := make([]minted, 0, len(all))
	for id, meta := range all {
		nfts = append(nfts, minted{TokenID: id, NFTMetadata: meta})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "nfts": nfts, "total": len(nfts)})
}
