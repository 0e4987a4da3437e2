package register

import "memexplainer/internal/domain"

// BuiltinPatterns returns the seed example set for a register. The sets cover
// phrase, keyword, and tone categories so FormatContext always has something
// to group by, even on a fresh database.
func BuiltinPatterns(register domain.Register) []domain.RegisterExample {
	switch register {
	case domain.RegisterBoomer:
		return boomerPatterns
	case domain.RegisterGenX:
		return genXPatterns
	case domain.RegisterMillenial:
		return millenialPatterns
	case domain.RegisterGenZ:
		return genZPatterns
	default:
		return nil
	}
}

var boomerPatterns = []domain.RegisterExample{
	{Text: "back in my day", Category: "phrase", Context: "referencing the past"},
	{Text: "newfangled", Category: "keyword", Context: "describing new technology"},
	{Text: "the younger generation", Category: "phrase", Context: "talking about youth"},
	{Text: "it's similar to when we had...", Category: "phrase", Context: "making comparisons"},
	{Text: "on television", Category: "phrase", Context: "referencing media"},
	{Text: "the kids these days", Category: "phrase", Context: "discussing trends"},
	{Text: "quite popular", Category: "phrase", Context: "showing approval"},
	{Text: "proper grammar", Category: "tone", Context: "use formal, complete sentences"},
	{Text: "respectful tone", Category: "tone", Context: "maintain professional distance"},
	{Text: "clear explanations", Category: "tone", Context: "avoid assumptions about internet knowledge"},
}

var genXPatterns = []domain.RegisterExample{
	{Text: "whatever", Category: "keyword", Context: "showing indifference"},
	{Text: "it's like [90s reference]", Category: "phrase", Context: "making comparisons"},
	{Text: "basically", Category: "keyword", Context: "simplifying explanations"},
	{Text: "pretty much", Category: "phrase", Context: "casual agreement"},
	{Text: "sort of like", Category: "phrase", Context: "making comparisons"},
	{Text: "went viral", Category: "phrase", Context: "describing spread"},
	{Text: "it's a thing now", Category: "phrase", Context: "accepting trends"},
	{Text: "semi-formal tone", Category: "tone", Context: "conversational but clear"},
	{Text: "light cynicism", Category: "tone", Context: "slightly skeptical humor acceptable"},
	{Text: "pop culture refs", Category: "tone", Context: "reference 90s/2000s culture"},
}

var millenialPatterns = []domain.RegisterExample{
	{Text: "lowkey", Category: "keyword", Context: "downplaying something"},
	{Text: "highkey", Category: "keyword", Context: "emphasizing something"},
	{Text: "literally", Category: "keyword", Context: "emphasizing (often hyperbolic)"},
	{Text: "tbh", Category: "keyword", Context: "being honest"},
	{Text: "ngl", Category: "keyword", Context: "not gonna lie - being candid"},
	{Text: "it's giving", Category: "phrase", Context: "describing vibes"},
	{Text: "the vibes", Category: "keyword", Context: "describing atmosphere/feeling"},
	{Text: "iconic", Category: "keyword", Context: "showing strong approval"},
	{Text: "that's so [year]", Category: "phrase", Context: "dating something"},
	{Text: "casual tone", Category: "tone", Context: "friendly, conversational"},
	{Text: "internet fluent", Category: "tone", Context: "assume familiarity with online culture"},
	{Text: "self-aware humor", Category: "tone", Context: "meta jokes acceptable"},
}

var genZPatterns = []domain.RegisterExample{
	{Text: "fr fr", Category: "keyword", Context: "for real - emphasizing truth"},
	{Text: "no cap", Category: "phrase", Context: "not lying"},
	{Text: "deadass", Category: "keyword", Context: "seriously"},
	{Text: "hits different", Category: "phrase", Context: "uniquely impactful"},
	{Text: "it's giving", Category: "phrase", Context: "describing energy/vibe"},
	{Text: "slay", Category: "keyword", Context: "doing something well"},
	{Text: "ate and left no crumbs", Category: "phrase", Context: "did something perfectly"},
	{Text: "unhinged", Category: "keyword", Context: "chaotic in a good way"},
	{Text: "rent free", Category: "phrase", Context: "can't stop thinking about"},
	{Text: "understood the assignment", Category: "phrase", Context: "did it perfectly"},
	{Text: "the way that", Category: "phrase", Context: "emphasizing a point"},
	{Text: "not the [thing]", Category: "phrase", Context: "expressing surprise"},
	{Text: "very informal", Category: "tone", Context: "extremely casual language"},
	{Text: "ironic humor", Category: "tone", Context: "embrace absurdist humor"},
	{Text: "brevity", Category: "tone", Context: "keep it short and punchy"},
}
