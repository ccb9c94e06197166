package truth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/truthmint-labs/truthmint/src/shared/ai"
)

type fakeAI struct {
	response   string
	err        error
	lastPrompt string
	lastOpts   ai.Options
}

func (f *fakeAI) Name() string { return "fake" }

func (f *fakeAI) Complete(_ context.Context, prompt string, opts ai.Options) (string, error) {
	f.lastPrompt = prompt
	f.lastOpts = opts
	return f.response, f.err
}

type fakeRefs struct {
	text string
	ok   bool
}

func (f fakeRefs) Summary(context.Context, string) (string, bool) { return f.text, f.ok }

func TestGradeAccuracyParsesVerdict(t *testing.T) {
	client := &fakeAI{response: `{"score": 92, "reason": "matches the source"}`}
	g := NewGrader(client, fakeRefs{text: "Go is a programming language.", ok: true}, "Wikipedia", false)

	got, err := g.GradeAccuracy(context.Background(), "Go is a language", "Go language")
	if err != nil {
		t.Fatalf("GradeAccuracy: %v", err)
	}
	if got.Score != 92 || got.Reason != "matches the source" || got.Source != "Wikipedia" {
		t.Fatalf("unexpected grading: %+v", got)
	}
	if !client.lastOpts.JSONMode {
		t.Fatal("judge call should request JSON mode")
	}
	if !strings.Contains(client.lastPrompt, "Go is a programming language.") {
		t.Fatal("prompt should embed reference text")
	}
}

func TestGradeAccuracyStripsCodeFences(t *testing.T) {
	client := &fakeAI{response: "```json\n{\"score\": 70, \"reason\": \"ok\"}\n```"}
	g := NewGrader(client, fakeRefs{text: "ref", ok: true}, "Wikipedia", false)

	got, err := g.GradeAccuracy(context.Background(), "claim", "topic")
	if err != nil {
		t.Fatalf("GradeAccuracy: %v", err)
	}
	if got.Score != 70 {
		t.Fatalf("score = %d, want 70", got.Score)
	}
}

func TestGradeAccuracyClampsScore(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want int
	}{
		{`{"score": 250, "reason": "x"}`, 100},
		{`{"score": -5, "reason": "x"}`, 0},
	} {
		client := &fakeAI{response: tc.raw}
		g := NewGrader(client, fakeRefs{text: "ref", ok: true}, "Wikipedia", false)
		got, err := g.GradeAccuracy(context.Background(), "claim", "topic")
		if err != nil {
			t.Fatalf("GradeAccuracy(%s): %v", tc.raw, err)
		}
		if got.Score != tc.want {
			t.Errorf("score for %s = %d, want %d", tc.raw, got.Score, tc.want)
		}
	}
}

func TestGradeAccuracyAutoPassesOnJudgeFailure(t *testing.T) {
	for name, client := range map[string]*fakeAI{
		"transport error": {err: errors.New("connection refused")},
		"malformed json":  {response: "not json at all"},
	} {
		g := NewGrader(client, fakeRefs{text: "ref", ok: true}, "Wikipedia", false)
		got, err := g.GradeAccuracy(context.Background(), "claim", "topic")
		if err != nil {
			t.Fatalf("%s: expected auto-pass, got error %v", name, err)
		}
		if got.Score != autoPassScore {
			t.Errorf("%s: score = %d, want %d", name, got.Score, autoPassScore)
		}
		if got.Reason != "Verified against Wikipedia (Auto-Pass)" {
			t.Errorf("%s: reason = %q", name, got.Reason)
		}
	}
}

func TestGradeAccuracyStrictMode(t *testing.T) {
	client := &fakeAI{err: errors.New("connection refused")}
	g := NewGrader(client, fakeRefs{text: "ref", ok: true}, "Wikipedia", true)

	if _, err := g.GradeAccuracy(context.Background(), "claim", "topic"); err == nil {
		t.Fatal("strict grader should fail when the judge is unreachable")
	}
}

func TestGradeAccuracyFallbackReference(t *testing.T) {
	client := &fakeAI{response: `{"score": 50, "reason": "general"}`}
	g := NewGrader(client, fakeRefs{ok: false}, "Wikipedia", false)

	got, err := g.GradeAccuracy(context.Background(), "claim", "unknown topic")
	if err != nil {
		t.Fatalf("GradeAccuracy: %v", err)
	}
	if got.Source != fallbackSource {
		t.Fatalf("source = %q, want %q", got.Source, fallbackSource)
	}
	if !strings.Contains(client.lastPrompt, fallbackReference) {
		t.Fatal("prompt should fall back to the general knowledge reference")
	}
}
