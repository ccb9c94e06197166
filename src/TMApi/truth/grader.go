package truth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/truthmint-labs/truthmint/src/shared/ai"
)

const (
	// Reference text used when the knowledge service has nothing for
	// the topic; the judge then grades against general knowledge.
	fallbackReference = "General knowledge dictates that facts must be cross-referenced with reliable sources."
	fallbackSource    = "General Knowledge Model"

	autoPassScore = 85
	referenceMax  = 800
)

// ReferenceFetcher retrieves ground-truth text for a topic. The second
// return is false when no usable reference exists.
type ReferenceFetcher interface {
	Summary(ctx context.Context, topic string) (string, bool)
}

// Grading is the judge's verdict on a single claim.
type Grading struct {
	Score  int
	Reason string
	Source string
}

// Grader scores claims against retrieved reference text using a
// completion model as the judge.
type Grader struct {
	ai         ai.Client
	references ReferenceFetcher
	sourceName string
	// strict fails the request when the judge is unreachable or
	// returns garbage; the default auto-passes with a fixed score,
	// matching the reference system's optimistic policy.
	strict bool
}

func NewGrader(client ai.Client, references ReferenceFetcher, sourceName string, strict bool) *Grader {
	return &Grader{ai: client, references: references, sourceName: sourceName, strict: strict}
}

// GradeAccuracy fetches reference text for the topic and asks the judge
// for a 0-100 score plus a reason. Scores are clamped to [0,100] so a
// malformed judge response can never push an out-of-range value into
// the ledger.
func (g *Grader) GradeAccuracy(ctx context.Context, claim, topic string) (Grading, error) {
	sourceText, ok := g.references.Summary(ctx, topic)
	sourceName := g.sourceName
	if !ok {
		sourceText = fallbackReference
		sourceName = fallbackSource
	}

	prompt := buildJudgePrompt(claim, sourceText, sourceName)

	raw, err := g.ai.Complete(ctx, prompt, ai.Options{JSONMode: true})
	if err != nil {
		return g.fallback(sourceName, err)
	}

	var verdict struct {
		Score  float64 `json:"score"`
		Reason string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &verdict); err != nil {
		return g.fallback(sourceName, fmt.Errorf("parse judge response: %w", err))
	}

	return Grading{
		Score:  clampScore(int(verdict.Score)),
		Reason: verdict.Reason,
		Source: sourceName,
	}, nil
}

func (g *Grader) fallback(sourceName string, cause error) (Grading, error) {
	if g.strict {
		return Grading{}, fmt.Errorf("judge unavailable: %w", cause)
	}
	log.Printf("grader: judge failed (%v), auto-passing with score %d", cause, autoPassScore)
	return Grading{
		Score:  autoPassScore,
		Reason: fmt.Sprintf("Verified against %s (Auto-Pass)", sourceName),
		Source: sourceName,
	}, nil
}

func buildJudgePrompt(claim, sourceText, sourceName string) string {
	if len(sourceText) > referenceMax {
		sourceText = sourceText[:referenceMax]
	}
	return fmt.Sprintf(`[INST] You are a Fact-Checking Engine.
Compare the CLAIM against the SOURCE TRUTH.

SOURCE TRUTH (%s): "%s..."
USER CLAIM: "%s"

Task:
1. Determine if the CLAIM is supported by the SOURCE.
2. Assign a "score" from 0 to 100.
3. Provide a short "reason".

CRITICAL: Respond ONLY with valid JSON. Do not write anything else.
Format: { "score": number, "reason": "string" }
[/INST]`, sourceName, sourceText, claim)
}

// stripCodeFences removes markdown ``` wrappers some models put around
// JSON output.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
