package flare

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

const truthHubABI = `[
  {"type":"function","name":"registerProof","stateMutability":"nonpayable",
   "inputs":[{"name":"claim","type":"string"},{"name":"isVerified","type":"bool"},
             {"name":"confidenceScore","type":"uint256"},{"name":"dataSource","type":"string"},
             {"name":"ftsoData","type":"string"},{"name":"fdcData","type":"string"}],
   "outputs":[{"name":"proofId","type":"uint256"}]},
  {"type":"function","name":"getProof","stateMutability":"view",
   "inputs":[{"name":"proofId","type":"uint256"}],
   "outputs":[{"name":"claim","type":"string"},{"name":"isVerified","type":"bool"},
              {"name":"confidenceScore","type":"uint256"},{"name":"timestamp","type":"uint256"},
              {"name":"dataSource","type":"string"},{"name":"ftsoData","type":"string"},
              {"name":"fdcData","type":"string"}]},
  {"type":"function","name":"proofCount","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"event","name":"ProofRegistered","anonymous":false,
   "inputs":[{"name":"proofId","type":"uint256","indexed":true},
             {"name":"submitter","type":"address","indexed":true}]}
]`

const txTimeout = 90 * time.Second

// TruthHub is the proof-ledger contract adapter. Append-only: proofs are
// registered and read back by sequential id, never updated.
type TruthHub struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	parsed   abi.ABI
	opts     *bind.TransactOpts

	// Serializes submissions so the count-based id fallback stays
	// correct when a receipt carries no ProofRegistered event.
	writeMu sync.Mutex
}

// NewTruthHub connects the ledger adapter. Returns an error when the
// private key or address is malformed; the caller decides whether a
// ledger is required at all.
func NewTruthHub(rpcURL, contractAddr, privateKeyHex string, chainID int64) (*TruthHub, error) {
	if contractAddr == "" || privateKeyHex == "" {
		return nil, fmt.Errorf("truthhub: contract address and private key are required")
	}
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("truthhub: dial %s: %w", rpcURL, err)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("truthhub: parse private key: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
	if err != nil {
		return nil, fmt.Errorf("truthhub: transactor: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(truthHubABI))
	if err != nil {
		return nil, fmt.Errorf("truthhub: parse ABI: %w", err)
	}
	contract := bind.NewBoundContract(common.HexToAddress(contractAddr), parsed, client, client, client)
	return &TruthHub{client: client, contract: contract, parsed: parsed, opts: opts}, nil
}

// Register appends a proof and waits for on-chain confirmation before
// returning, so subsequent reads observe the new entry. The assigned id
// is taken from the ProofRegistered event in the receipt; deriving it
// from a later proofCount read races under concurrent writers.
func (h *TruthHub) Register(ctx context.Context, sub types.ProofSubmission) (uint64, string, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	opts := *h.opts
	opts.Context = ctx

	tx, err := h.contract.Transact(&opts, "registerProof",
		sub.Claim,
		sub.IsVerified,
		big.NewInt(int64(sub.ConfidenceScore)),
		sub.DataSource,
		sub.OracleData,
		sub.AuxData,
	)
	if err != nil {
		return 0, "", fmt.Errorf("truthhub: registerProof: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, h.client, tx)
	if err != nil {
		return 0, "", fmt.Errorf("truthhub: wait mined: %w", err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return 0, "", fmt.Errorf("truthhub: registerProof reverted (tx %s)", tx.Hash().Hex())
	}

	if id, ok := proofIDFromReceipt(h.parsed, receipt); ok {
		return id, tx.Hash().Hex(), nil
	}

	// Contract builds without the event: fall back to count-1. Safe
	// here only because writeMu serializes our own submissions.
	log.Printf("truthhub: no ProofRegistered event in receipt %s, deriving id from proofCount", tx.Hash().Hex())
	count, err := h.ProofCount(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("truthhub: read count after append: %w", err)
	}
	if count == 0 {
		return 0, "", fmt.Errorf("truthhub: empty ledger after append")
	}
	return count - 1, tx.Hash().Hex(), nil
}

func proofIDFromReceipt(parsed abi.ABI, receipt *ethtypes.Receipt) (uint64, bool) {
	event, ok := parsed.Events["ProofRegistered"]
	if !ok {
		return 0, false
	}
	for _, lg := range receipt.Logs {
		if len(lg.Topics) < 2 || lg.Topics[0] != event.ID {
			continue
		}
		return new(big.Int).SetBytes(lg.Topics[1].Bytes()).Uint64(), true
	}
	return 0, false
}

// GetProof reads one ledger entry. The contract returns a zero-valued
// struct for unknown ids, so callers must treat an empty claim as not
// found.
func (h *TruthHub) GetProof(ctx context.Context, id uint64) (types.LedgerProof, error) {
	var out []interface{}
	err := h.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProof", new(big.Int).SetUint64(id))
	if err != nil {
		return types.LedgerProof{}, fmt.Errorf("truthhub: getProof(%d): %w", id, err)
	}
	if len(out) != 7 {
		return types.LedgerProof{}, fmt.Errorf("truthhub: getProof(%d): unexpected output arity %d", id, len(out))
	}
	return types.LedgerProof{
		Claim:           out[0].(string),
		IsVerified:      out[1].(bool),
		ConfidenceScore: int(out[2].(*big.Int).Int64()),
		Timestamp:       out[3].(*big.Int).Int64(),
		DataSource:      out[4].(string),
		OracleData:      out[5].(string),
		AuxData:         out[6].(string),
	}, nil
}

// ProofCount returns the exclusive upper bound of valid proof ids.
func (h *TruthHub) ProofCount(ctx context.Context) (uint64, error) {
	var out []interface{}
	err := h.contract.Call(&bind.CallOpts{Context: ctx}, &out, "proofCount")
	if err != nil {
		return 0, fmt.Errorf("truthhub: proofCount: %w", err)
	}
	return out[0].(*big.Int).Uint64(), nil
}

// Balance returns the native-token balance of an address in whole coins.
func (h *TruthHub) Balance(ctx context.Context, address string) (float64, error) {
	wei, err := h.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, fmt.Errorf("truthhub: balance of %s: %w", address, err)
	}
	coins, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
	return coins, nil
}
