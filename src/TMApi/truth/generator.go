package truth

import (
	"context"
	"log"
	"strings"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
	"github.com/truthmint-labs/truthmint/src/shared/ai"
)

// GeneratedClaim is the output of the claim generator.
type GeneratedClaim struct {
	Claim    string         `json:"claim"`
	Topic    string         `json:"topic"`
	Category types.Category `json:"category"`
}

// Generator produces a short factual claim for a topic and tags it with
// a coarse category.
type Generator struct {
	ai ai.Client
}

func NewGenerator(client ai.Client) *Generator {
	return &Generator{ai: client}
}

// GenerateClaim never fails: an unreachable model yields a placeholder
// claim so the request still completes.
func (g *Generator) GenerateClaim(ctx context.Context, topic string) GeneratedClaim {
	prompt := `State ONE interesting fact about "` + topic + `" in less than 15 words.`
	claim, err := g.ai.Complete(ctx, prompt, ai.Options{})
	if err != nil {
		log.Printf("generator: completion failed: %v", err)
		claim = "AI Service Unavailable"
	}
	return GeneratedClaim{
		Claim:    claim,
		Topic:    topic,
		Category: CategorizeTopic(topic),
	}
}

// CategorizeTopic assigns a coarse category from keyword sniffing.
func CategorizeTopic(topic string) types.Category {
	lower := strings.ToLower(topic)
	for _, t := range []string{"btc", "eth", "crypto", "bitcoin"} {
		if strings.Contains(lower, t) {
			return types.CategoryCrypto
		}
	}
	if strings.Contains(lower, "weather") {
		return types.CategoryWeather
	}
	return types.CategoryGeneral
}
