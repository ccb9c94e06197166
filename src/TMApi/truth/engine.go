package truth

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

// AI-graded claims pass when the judge scores above this.
const verifiedThreshold = 60

// Judge scores a claim against reference text.
type Judge interface {
	GradeAccuracy(ctx context.Context, claim, topic string) (Grading, error)
}

// Ledger is the append-only proof store. Register must not return until
// the append is confirmed, so the assigned id is final.
type Ledger interface {
	Register(ctx context.Context, sub types.ProofSubmission) (id uint64, txHash string, err error)
	GetProof(ctx context.Context, id uint64) (types.LedgerProof, error)
	ProofCount(ctx context.Context) (uint64, error)
}

// ProofMirror receives a best-effort off-chain copy of anchored proofs.
type ProofMirror interface {
	Save(ctx context.Context, id uint64, rec types.VerificationRecord, txHash string) error
}

// Engine routes a claim to a verification strategy by category, then
// anchors the outcome to the ledger. Ledger and mirror are optional;
// without them verification still completes with null proof fields.
type Engine struct {
	judge  Judge
	oracle PriceOracle
	ledger Ledger
	mirror ProofMirror
}

func NewEngine(judge Judge, oracle PriceOracle, ledger Ledger, mirror ProofMirror) *Engine {
	return &Engine{judge: judge, oracle: oracle, ledger: ledger, mirror: mirror}
}

// Verify produces a VerificationRecord for the claim. It never returns
// an error: any failure in grading or oracle lookup degrades to a
// failed record, and a failed anchor leaves proofId/txHash null.
func (e *Engine) Verify(ctx context.Context, claim string, category types.Category) types.VerificationRecord {
	log.Printf("verifying claim %q [%s]", claim, category)

	var rec types.VerificationRecord
	switch {
	case category == types.CategoryLegal:
		// The document hash was computed and checked client-side;
		// this path only anchors it.
		rec = types.VerificationRecord{
			Claim:           claim,
			IsVerified:      true,
			ConfidenceScore: 100,
			DataSource:      "SHA-256 Cryptography",
			OracleData:      "N/A",
			AuxData:         "Document Anchored",
		}
	case category.IsAIGraded():
		grading, err := e.judge.GradeAccuracy(ctx, claim, deriveTopic(claim))
		if err != nil {
			return types.VerificationRecord{
				Claim:      claim,
				IsVerified: false,
				Category:   category,
				Error:      err.Error(),
			}
		}
		rec = types.VerificationRecord{
			Claim:           claim,
			IsVerified:      grading.Score > verifiedThreshold,
			ConfidenceScore: grading.Score,
			DataSource:      fmt.Sprintf("AI Fact Check (%s)", grading.Source),
			OracleData:      "N/A",
			AuxData:         grading.Reason,
		}
	default:
		// CRYPTO, WEATHER and anything unrecognized go numeric.
		rec = compareClaimToOracle(ctx, e.oracle, claim)
	}

	rec.Category = category
	e.anchor(ctx, &rec)
	return rec
}

// anchor appends the record to the ledger. Failures are logged and
// leave proofId/txHash null; they never surface to the caller.
func (e *Engine) anchor(ctx context.Context, rec *types.VerificationRecord) {
	if e.ledger == nil {
		return
	}
	id, txHash, err := e.ledger.Register(ctx, types.ProofSubmission{
		Claim:           rec.Claim,
		IsVerified:      rec.IsVerified,
		ConfidenceScore: rec.ConfidenceScore,
		DataSource:      rec.DataSource,
		OracleData:      rec.OracleData,
		AuxData:         rec.AuxData,
	})
	if err != nil {
		log.Printf("on-chain registration failed: %v", err)
		return
	}

	proofID := strconv.FormatUint(id, 10)
	rec.ProofID = &proofID
	rec.TxHash = &txHash
	log.Printf("proof stored on-chain: proofId=%s tx=%s", proofID, txHash)

	if e.mirror != nil {
		if err := e.mirror.Save(ctx, id, *rec, txHash); err != nil {
			log.Printf("proof mirror write failed: %v", err)
		}
	}
}

// deriveTopic takes the first two space-delimited tokens of the claim
// as the lookup topic. A single-word claim yields that word plus an
// empty second token.
func deriveTopic(claim string) string {
	parts := strings.Split(claim, " ")
	second := ""
	if len(parts) > 1 {
		second = parts[1]
	}
	return parts[0] + " " + second
}
