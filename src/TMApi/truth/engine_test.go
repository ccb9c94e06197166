package truth

import (
	"context"
	"errors"
	"testing"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

type stubJudge struct {
	grading Grading
	err     error
	calls   int
}

func (s *stubJudge) GradeAccuracy(context.Context, string, string) (Grading, error) {
	s.calls++
	return s.grading, s.err
}

type stubLedger struct {
	id     uint64
	txHash string
	err    error
	subs   []types.ProofSubmission
}

func (s *stubLedger) Register(_ context.Context, sub types.ProofSubmission) (uint64, string, error) {
	s.subs = append(s.subs, sub)
	return s.id, s.txHash, s.err
}

func (s *stubLedger) GetProof(context.Context, uint64) (types.LedgerProof, error) {
	return types.LedgerProof{}, nil
}

func (s *stubLedger) ProofCount(context.Context) (uint64, error) {
	return uint64(len(s.subs)), nil
}

type stubMirror struct {
	ids []uint64
	err error
}

func (s *stubMirror) Save(_ context.Context, id uint64, _ types.VerificationRecord, _ string) error {
	s.ids = append(s.ids, id)
	return s.err
}

func TestVerifyLegal(t *testing.T) {
	ledger := &stubLedger{id: 7, txHash: "0xabc"}
	mirror := &stubMirror{}
	e := NewEngine(&stubJudge{}, fakeOracle{}, ledger, mirror)

	rec := e.Verify(context.Background(), "Document Integrity: contract.pdf", types.CategoryLegal)

	if !rec.IsVerified || rec.ConfidenceScore != 100 {
		t.Fatalf("legal anchoring must pass deterministically: %+v", rec)
	}
	if rec.DataSource != "SHA-256 Cryptography" || rec.AuxData != "Document Anchored" {
		t.Fatalf("unexpected legal record: %+v", rec)
	}
	if rec.ProofID == nil || *rec.ProofID != "7" || rec.TxHash == nil || *rec.TxHash != "0xabc" {
		t.Fatalf("anchor fields not set: %+v", rec)
	}
	if len(ledger.subs) != 1 || ledger.subs[0].Claim != "Document Integrity: contract.pdf" {
		t.Fatalf("ledger submissions: %+v", ledger.subs)
	}
	if len(mirror.ids) != 1 || mirror.ids[0] != 7 {
		t.Fatalf("mirror writes: %v", mirror.ids)
	}
}

func TestVerifyAIThreshold(t *testing.T) {
	for _, tc := range []struct {
		score    int
		verified bool
	}{
		{61, true},
		{60, false},
	} {
		judge := &stubJudge{grading: Grading{Score: tc.score, Reason: "r", Source: "Wikipedia"}}
		e := NewEngine(judge, fakeOracle{}, nil, nil)

		rec := e.Verify(context.Background(), "some claim here", types.CategoryGeneral)
		if rec.IsVerified != tc.verified {
			t.Errorf("score %d: isVerified = %v, want %v", tc.score, rec.IsVerified, tc.verified)
		}
		if rec.DataSource != "AI Fact Check (Wikipedia)" {
			t.Errorf("dataSource = %q", rec.DataSource)
		}
		if rec.ProofID != nil || rec.TxHash != nil {
			t.Errorf("no ledger configured, proof fields must stay null: %+v", rec)
		}
	}
}

func TestVerifyJudgeFailureSkipsAnchor(t *testing.T) {
	ledger := &stubLedger{id: 1, txHash: "0x1"}
	judge := &stubJudge{err: errors.New("judge unavailable: down")}
	e := NewEngine(judge, fakeOracle{}, ledger, nil)

	rec := e.Verify(context.Background(), "some claim", types.CategoryHistory)

	if rec.IsVerified || rec.Error == "" {
		t.Fatalf("judge failure must degrade the record: %+v", rec)
	}
	if rec.Category != types.CategoryHistory {
		t.Fatalf("category = %q", rec.Category)
	}
	if len(ledger.subs) != 0 {
		t.Fatal("degraded records must not be anchored")
	}
}

func TestVerifyRoutesCryptoToOracle(t *testing.T) {
	judge := &stubJudge{}
	e := NewEngine(judge, fakeOracle{price: 97000}, nil, nil)

	rec := e.Verify(context.Background(), "BTC is at $97,000", types.CategoryCrypto)

	if judge.calls != 0 {
		t.Fatal("CRYPTO must not reach the judge")
	}
	if !rec.IsVerified || rec.DataSource != "Flare FTSO" {
		t.Fatalf("unexpected oracle record: %+v", rec)
	}
	if rec.Category != types.CategoryCrypto {
		t.Fatalf("category = %q", rec.Category)
	}
}

func TestVerifyRoutesUnknownCategoryToOracle(t *testing.T) {
	judge := &stubJudge{}
	e := NewEngine(judge, fakeOracle{price: 97000}, nil, nil)

	rec := e.Verify(context.Background(), "BTC is at $97,000", types.Category("SOMETHING_ELSE"))

	if judge.calls != 0 {
		t.Fatal("unrecognized categories must not reach the judge")
	}
	if rec.DataSource != "Flare FTSO" || rec.Category != types.Category("SOMETHING_ELSE") {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestVerifyAnchorsOracleErrorRecord(t *testing.T) {
	ledger := &stubLedger{id: 3, txHash: "0x3"}
	e := NewEngine(&stubJudge{}, fakeOracle{err: errors.New("rpc down")}, ledger, nil)

	rec := e.Verify(context.Background(), "BTC is at $97,000", types.CategoryCrypto)

	if rec.IsVerified || rec.DataSource != "Error" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(ledger.subs) != 1 {
		t.Fatal("oracle-error outcomes still get anchored")
	}
}

func TestVerifyAbsorbsLedgerFailure(t *testing.T) {
	ledger := &stubLedger{err: errors.New("revert")}
	mirror := &stubMirror{}
	e := NewEngine(&stubJudge{grading: Grading{Score: 90, Source: "Wikipedia"}}, fakeOracle{}, ledger, mirror)

	rec := e.Verify(context.Background(), "some claim", types.CategoryGeneral)

	if !rec.IsVerified {
		t.Fatalf("ledger failure must not flip the verdict: %+v", rec)
	}
	if rec.ProofID != nil || rec.TxHash != nil {
		t.Fatalf("failed anchor must leave proof fields null: %+v", rec)
	}
	if len(mirror.ids) != 0 {
		t.Fatal("mirror must not run after a failed anchor")
	}
}

func TestDeriveTopic(t *testing.T) {
	for _, tc := range []struct {
		claim string
		want  string
	}{
		{"The Eiffel Tower is in Paris", "The Eiffel"},
		{"Bitcoin", "Bitcoin "},
	} {
		if got := deriveTopic(tc.claim); got != tc.want {
			t.Errorf("deriveTopic(%q) = %q, want %q", tc.claim, got, tc.want)
		}
	}
}
