// Package tokenizer estimates how many model tokens a piece of text costs so
// prompt content can be held to a budget.
package tokenizer

import (
	"strings"
)

// EstimateTokens provides a rough token count estimate.
// Blends ~1.3 tokens per word with ~4 bytes per token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	wordEstimate := int(float64(words) * 1.3)
	charEstimate := len(text) / 4
	return (wordEstimate + charEstimate) / 2
}

// Truncate shortens text to roughly budget tokens, cutting at a word
// boundary when one is close and never splitting a UTF-8 rune.
func Truncate(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if EstimateTokens(text) <= budget {
		return text
	}

	maxBytes := budget * 4
	if maxBytes >= len(text) {
		return text
	}
	for maxBytes > 0 && !runeStart(text[maxBytes]) {
		maxBytes--
	}

	cut := text[:maxBytes]
	if lastSpace := strings.LastIndex(cut, " "); lastSpace > maxBytes/2 {
		cut = cut[:lastSpace]
	}
	return cut + "..."
}

// Fit keeps items in order while their combined estimate, plus perItem
// overhead each, stays within budget. Each kept item is first truncated to
// itemBudget tokens. The second result is how many items were dropped.
func Fit(items []string, budget, itemBudget, perItem int) ([]string, int) {
	kept := make([]string, 0, len(items))
	used := 0
	for i, item := range items {
		item = Truncate(item, itemBudget)
		cost := EstimateTokens(item) + perItem
		if used+cost > budget {
			return kept, len(items) - i
		}
		kept = append(kept, item)
		used += cost
	}
	return kept, 0
}

func runeStart(b byte) bool { return b&0xC0 != 0x80 }
