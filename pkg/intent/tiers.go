package intent

import (
	"strings"
	"time"
)

// Models per tier. These are Ollama model names; the fast tier answers
// action-verb commands, deep handles explanations, reasoning handles code
// and multi-step problems.
const (
	ModelFast      = "phi3:mini"
	ModelDeep      = "llama3:instruct"
	ModelReasoning = "mistral:latest"
)

// ModelFallback is the fixed order walked when a preferred model is
// unavailable. The first entry is the last resort when nothing is available.
var ModelFallback = []string{ModelFast, ModelDeep, ModelReasoning}

// Per-tier invocation timeouts.
const (
	TimeoutFast      = 15 * time.Second
	TimeoutNormal    = 30 * time.Second
	TimeoutReasoning = 45 * time.Second
)

// TimeoutFor returns the invocation timeout for a model name.
func TimeoutFor(model string) time.Duration {
	switch {
	case strings.Contains(model, "phi3"):
		return TimeoutFast
	case strings.Contains(model, "mistral"):
		return TimeoutReasoning
	default:
		return TimeoutNormal
	}
}

// Tier is a model class. TierAuto means "score the text and decide".
type Tier int

const (
	TierAuto Tier = iota
	TierFast
	TierDeep
	TierReasoning
)

func (t Tier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierDeep:
		return "deep"
	case TierReasoning:
		return "reasoning"
	}
	return "auto"
}

// Model returns the model serving this tier.
func (t Tier) Model() string {
	switch t {
	case TierDeep:
		return ModelDeep
	case TierReasoning:
		return ModelReasoning
	default:
		return ModelFast
	}
}

// Keyword tables for tier scoring. Substring matches against the lowercased
// text, one point per hit.
var (
	fastKeywords = []string{
		"open", "close", "start", "stop", "launch", "quit", "exit",
		"play", "pause", "skip", "next", "previous", "volume",
		"shutdown", "restart", "sleep", "hibernate", "copy", "paste",
		"thorakku", "muddu", "pannu", "podu", "kelu", "ninruthu",
		"hello", "hi", "vanakkam", "thanks", "bye",
	}

	deepKeywords = []string{
		"explain", "what is", "who is", "where is", "when did", "how does",
		"definition", "meaning", "history", "biography", "facts about",
		"tell me about", "describe", "overview", "summary", "information",
	}

	reasoningKeywords = []string{
		"solve", "calculate", "compute", "analyze", "compare", "evaluate",
		"problem", "puzzle", "logic", "reasoning", "algorithm", "code",
		"generate code", "write code", "create program", "debug", "programming",
	}
)

// ScoreTier picks a tier by keyword hit count. Reasoning wins only when it
// strictly beats both others, deep only when it strictly beats fast, and fast
// is the default.
func ScoreTier(text string) Tier {
	lower := strings.ToLower(text)

	fast := countHits(lower, fastKeywords)
	deep := countHits(lower, deepKeywords)
	reasoning := countHits(lower, reasoningKeywords)

	switch {
	case reasoning > fast && reasoning > deep:
		return TierReasoning
	case deep > fast:
		return TierDeep
	default:
		return TierFast
	}
}

func countHits(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
