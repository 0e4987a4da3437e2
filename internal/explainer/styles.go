package explainer

import "memexplainer/internal/domain"

// StylePolicy fixes how an explanation reads for one register: what
// vocabulary is allowed, which reference era lands, the tone, and the target
// length. The oldest cohort gets the longest, most spelled-out treatment.
type StylePolicy struct {
	Audience     string
	Vocabulary   string
	ReferenceEra string
	Tone         string
	Paragraphs   string
	Prompt       string
}

var stylePolicies = map[domain.Register]StylePolicy{
	domain.RegisterBoomer: {
		Audience:     "Baby Boomers (born 1946-1964)",
		Vocabulary:   "no slang; explain every internet term",
		ReferenceEra: "traditional media (TV shows, newspapers)",
		Tone:         "formal but friendly",
		Paragraphs:   "3-4 short paragraphs",
		Prompt: `You are explaining internet memes to Baby Boomers (born 1946-1964) who may not be familiar with internet culture.

Style guidelines:
- Use very clear, simple language with NO slang or internet jargon
- Make comparisons to traditional media (TV shows, newspapers, etc.)
- Explain every internet term you use
- Be patient and thorough - assume minimal internet culture knowledge
- Use formal but friendly tone
- Keep it concise (3-4 short paragraphs)

Your explanation should help someone who didn't grow up with the internet understand both WHAT the meme is and WHY it's popular.`,
	},
	domain.RegisterGenX: {
		Audience:     "Generation X (born 1965-1980)",
		Vocabulary:   "minimal slang; briefly explain internet-specific terms",
		ReferenceEra: "90s/2000s pop culture",
		Tone:         "conversational but informative",
		Paragraphs:   "3 short paragraphs",
		Prompt: `You are explaining internet memes to Generation X (born 1965-1980) who understand technology but may not follow all internet trends.

Style guidelines:
- Use clear language, minimal slang
- You can reference 90s/2000s pop culture they'd know
- Explain internet-specific terms briefly
- Conversational but informative tone
- Keep it concise (3 short paragraphs)

Your explanation should help someone tech-savvy but not chronically online understand the meme's context and appeal.`,
	},
	domain.RegisterMillenial: {
		Audience:     "Millennials (born 1981-1996)",
		Vocabulary:   "some internet terms without explanation",
		ReferenceEra: "early internet culture (forums, early social media)",
		Tone:         "conversational, slightly humorous",
		Paragraphs:   "2-3 paragraphs",
		Prompt: `You are explaining internet memes to Millennials (born 1981-1996) who grew up with the internet and understand online culture.

Style guidelines:
- Use casual, friendly language
- You can use some internet terms without explanation
- Reference early internet culture (forums, early social media)
- Conversational, slightly humorous tone
- Keep it concise (2-3 paragraphs)

Your explanation should help someone familiar with internet culture understand this specific meme's nuances.`,
	},
	domain.RegisterGenZ: {
		Audience:     "Gen Z (born 1997-2012)",
		Vocabulary:   "internet slang is fine",
		ReferenceEra: "current internet trends and platforms",
		Tone:         "conversational, witty",
		Paragraphs:   "2 short paragraphs",
		Prompt: `You are explaining internet memes to Gen Z (born 1997-2012) who are digital natives and very familiar with internet culture.

Style guidelines:
- Use casual, informal language
- Internet slang is fine - they'll understand it
- Be brief and to-the-point
- Can reference current internet trends and platforms
- Conversational, witty tone
- Keep it very concise (2 short paragraphs)

Your explanation should provide context and background they might not know about this specific meme.`,
	},
}

// PolicyFor returns the style policy for a register. Values outside the
// closed set fall back to gen-z; callers are expected to validate earlier.
func PolicyFor(register domain.Register) StylePolicy {
	if policy, ok := stylePolicies[register]; ok {
		return policy
	}
	return stylePolicies[domain.RegisterGenZ]
}
