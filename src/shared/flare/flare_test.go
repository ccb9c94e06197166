package flare

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	gocache "github.com/patrickmn/go-cache"
)

func TestFallbackPrice(t *testing.T) {
	for _, tc := range []struct {
		symbol string
		want   float64
	}{
		{"BTC", 97000},
		{"btc", 97000},
		{"ETH", 3800},
		{"FLR", 0.03},
		{"DOGE", 0},
	} {
		if got := FallbackPrice(tc.symbol); got != tc.want {
			t.Errorf("FallbackPrice(%q) = %v, want %v", tc.symbol, got, tc.want)
		}
	}
}

func TestGetPriceFallsBackWhenNotConnected(t *testing.T) {
	f := &FTSO{cache: gocache.New(30*time.Second, time.Minute)}

	price, err := f.GetPrice(context.Background(), "btc")
	if err != nil {
		t.Fatalf("GetPrice must never error: %v", err)
	}
	if price != 97000 {
		t.Fatalf("price = %v, want fallback 97000", price)
	}
}

func TestGetPricePrefersCache(t *testing.T) {
	f := &FTSO{cache: gocache.New(30*time.Second, time.Minute)}
	f.cache.Set("BTC", 96123.45, gocache.DefaultExpiration)

	price, err := f.GetPrice(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price != 96123.45 {
		t.Fatalf("price = %v, want cached 96123.45", price)
	}
}

func TestSymbolRemap(t *testing.T) {
	if symbolRemap["BTC"] != "testBTC" || symbolRemap["ETH"] != "testETH" {
		t.Fatalf("coston2 feed names broken: %v", symbolRemap)
	}
	if _, ok := symbolRemap["FLR"]; ok {
		t.Fatal("FLR is a native feed, it must not be remapped")
	}
}

func TestProofIDFromReceipt(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(truthHubABI))
	if err != nil {
		t.Fatalf("parse ABI: %v", err)
	}
	event := parsed.Events["ProofRegistered"]

	receipt := &ethtypes.Receipt{Logs: []*ethtypes.Log{
		{Topics: []common.Hash{common.HexToHash("0xdead")}}, // unrelated log
		{Topics: []common.Hash{event.ID, common.BigToHash(big.NewInt(42)), common.HexToHash("0x1")}},
	}}

	id, ok := proofIDFromReceipt(parsed, receipt)
	if !ok || id != 42 {
		t.Fatalf("proofIDFromReceipt = (%d, %v), want (42, true)", id, ok)
	}
}

func TestProofIDFromReceiptMissingEvent(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(truthHubABI))
	if err != nil {
		t.Fatalf("parse ABI: %v", err)
	}
	receipt := &ethtypes.Receipt{Logs: []*ethtypes.Log{
		{Topics: []common.Hash{common.HexToHash("0xdead")}},
	}}

	if _, ok := proofIDFromReceipt(parsed, receipt); ok {
		t.Fatal("receipt without ProofRegistered must report not found")
	}
}
