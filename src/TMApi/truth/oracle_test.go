package truth

import (
	"context"
	"errors"
	"testing"
)

type fakeOracle struct {
	price float64
	err   error
}

func (f fakeOracle) GetPrice(context.Context, string) (float64, error) { return f.price, f.err }

func TestExtractClaimedPrice(t *testing.T) {
	for _, tc := range []struct {
		claim string
		want  float64
	}{
		{"BTC is trading at $97,000 today", 97000},
		{"ETH hit 3800.50", 3800.50},
		{"price is $1,234,567.89", 1234567.89},
		{"no numbers here", 0},
	} {
		if got := extractClaimedPrice(tc.claim); got != tc.want {
			t.Errorf("extractClaimedPrice(%q) = %v, want %v", tc.claim, got, tc.want)
		}
	}
}

func TestSniffSymbol(t *testing.T) {
	for _, tc := range []struct {
		claim string
		want  string
	}{
		{"Bitcoin hit a new high", "BTC"},
		{"something unrelated", "BTC"},
		{"ETH is above 3000", "ETH"},
		{"eth and flr both pumped", "FLR"},
	} {
		if got := sniffSymbol(tc.claim); got != tc.want {
			t.Errorf("sniffSymbol(%q) = %q, want %q", tc.claim, got, tc.want)
		}
	}
}

func TestCompareClaimToOracleWithinBand(t *testing.T) {
	rec := compareClaimToOracle(context.Background(), fakeOracle{price: 100000}, "BTC is at $97,000")
	if !rec.IsVerified || rec.ConfidenceScore != 100 {
		t.Fatalf("3%% deviation should verify: %+v", rec)
	}
	if rec.DataSource != "Flare FTSO" || rec.OracleData != "BTC: $100000" || rec.AuxData != "Price Match" {
		t.Fatalf("unexpected record fields: %+v", rec)
	}
}

func TestCompareClaimToOracleOutsideBand(t *testing.T) {
	rec := compareClaimToOracle(context.Background(), fakeOracle{price: 97000}, "BTC is at $50,000")
	if rec.IsVerified || rec.ConfidenceScore != 40 {
		t.Fatalf("48%% deviation should fail with score 40: %+v", rec)
	}
	if rec.AuxData != "Price Mismatch" {
		t.Fatalf("auxData = %q", rec.AuxData)
	}
}

func TestCompareClaimToOracleError(t *testing.T) {
	rec := compareClaimToOracle(context.Background(), fakeOracle{err: errors.New("rpc down")}, "BTC is at $97,000")
	if rec.IsVerified || rec.ConfidenceScore != 0 {
		t.Fatalf("oracle failure should zero the record: %+v", rec)
	}
	if rec.DataSource != "Error" || rec.AuxData != "rpc down" {
		t.Fatalf("unexpected error record: %+v", rec)
	}
}
