package explainer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

const (
	proseTemperature = 0.7
	contextK         = 8
)

// Explainer turns a curated record into audience-tailored prose. It combines
// the register's style policy with language examples retrieved from the
// register store, then issues one higher-temperature completion.
type Explainer struct {
	completer ports.Completer
	registers ports.RegisterContext
	logger    *slog.Logger
}

var _ ports.Explainer = (*Explainer)(nil)

// New constructs an explainer on top of a completion client and the register store.
func New(completer ports.Completer, registers ports.RegisterContext, logger *slog.Logger) *Explainer {
	return &Explainer{completer: completer, registers: registers, logger: logger}
}

// Explain generates the final explanation. The output is best-effort prose,
// but every invocation ends with a Sources section listing curated.Sources in
// order — appended by hand when the model's text lacks one.
func (e *Explainer) Explain(ctx context.Context, curated domain.CuratedRecord, topic string, register domain.Register) (string, error) {
	languageContext, err := e.registers.FormatContext(ctx, register, topic, contextK)
	if err != nil {
		return "", fmt.Errorf("retrieve %s context: %w", register, err)
	}

	system := buildSystemPrompt(register, languageContext)
	user := renderCurated(curated)

	out, err := e.completer.Complete(ctx, system, user, proseTemperature)
	if err != nil {
		return "", fmt.Errorf("explain %q: %w", topic, err)
	}

	return ensureSources(out, curated.Sources), nil
}

func buildSystemPrompt(register domain.Register, languageContext string) string {
	policy := PolicyFor(register)

	return fmt.Sprintf(`%s

IMPORTANT - Language Style Context:
%s

Use the language patterns above to inform your writing style. Incorporate appropriate keywords, phrases, and tone naturally into your explanation. Match the grammar and sentence structure typical of this generation.

Using the curated data provided:
1. Briefly introduce what the meme is and where it came from.
2. Explain what it means and how people use it.
3. Add a quick note on why people find it funny or relatable.

End with a "Sources" section in markdown format listing URLs used.`, policy.Prompt, languageContext)
}

func renderCurated(curated domain.CuratedRecord) string {
	return fmt.Sprintf(`
Meme: %s

About: %s

Origin: %s

Usage: %s

Sources: %s
`, curated.Name, curated.About, curated.Origin, curated.Usage, strings.Join(curated.Sources, ", "))
}

// ensureSources guarantees the explanation carries a Sources section with
// every curated source URL, in curated order. When the model already emitted
// a complete section it is left alone; otherwise a canonical one is appended.
func ensureSources(text string, sources []string) string {
	if hasCompleteSources(text, sources) {
		return text
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(text, "\n"))
	b.WriteString("\n\n## Sources\n")
	for _, src := range sources {
		b.WriteString("\n- " + src)
	}
	return b.String()
}

func hasCompleteSources(text string, sources []string) bool {
	idx := strings.LastIndex(text, "Sources")
	if idx < 0 {
		return false
	}

	rest := text[idx:]
	for _, src := range sources {
		pos := strings.Index(rest, src)
		if pos < 0 {
			return false
		}
		rest = rest[pos+len(src):]
	}
	return true
}
