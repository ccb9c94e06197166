package truth

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

// Tolerance band: a claimed price within 10% of the oracle passes.
const priceTolerancePct = 10

var priceRe = regexp.MustCompile(`\$?([\d,]+(?:\.\d+)?)`)

// PriceOracle provides live numeric reference values for a symbol.
type PriceOracle interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// compareClaimToOracle checks a numeric claim against the price oracle.
// The verdict is binary: confidence 100 inside the tolerance band, 40
// outside. Oracle errors produce a failed record, never a panic or a
// 5xx upstream.
func compareClaimToOracle(ctx context.Context, oracle PriceOracle, claim string) types.VerificationRecord {
	claimedPrice := extractClaimedPrice(claim)
	symbol := sniffSymbol(claim)

	oraclePrice, err := oracle.GetPrice(ctx, symbol)
	if err != nil {
		return types.VerificationRecord{
			Claim:           claim,
			IsVerified:      false,
			ConfidenceScore: 0,
			DataSource:      "Error",
			AuxData:         err.Error(),
		}
	}

	diff := oraclePrice - claimedPrice
	if diff < 0 {
		diff = -diff
	}
	denom := oraclePrice
	if denom < 1 {
		denom = 1
	}
	percentDiff := diff / denom * 100
	accurate := percentDiff < priceTolerancePct

	score := 40
	if accurate {
		score = 100
	}
	auxData := "Price Mismatch"
	if accurate {
		auxData = "Price Match"
	}

	return types.VerificationRecord{
		Claim:           claim,
		IsVerified:      accurate,
		ConfidenceScore: score,
		DataSource:      "Flare FTSO",
		OracleData:      symbol + ": $" + strconv.FormatFloat(oraclePrice, 'f', -1, 64),
		AuxData:         auxData,
	}
}

// extractClaimedPrice pulls the first numeric token out of the claim,
// tolerating a $ prefix and comma thousands separators. Missing number
// defaults to 0.
func extractClaimedPrice(claim string) float64 {
	m := priceRe.FindStringSubmatch(claim)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// sniffSymbol picks the asset symbol from the claim text. Ordered
// checks: eth overrides the BTC default, flr overrides eth.
func sniffSymbol(claim string) string {
	lower := strings.ToLower(claim)
	symbol := "BTC"
	if strings.Contains(lower, "eth") {
		symbol = "ETH"
	}
	if strings.Contains(lower, "flr") {
		symbol = "FLR"
	}
	return symbol
}
