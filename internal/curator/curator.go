package curator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

const extractionTemperature = 0.3

const systemPrompt = `You are a data curator. Extract and structure the key information from the raw meme data.

Your job is to:
1. Extract the most important facts about the meme
2. Identify origin information
3. Note key examples or usage patterns
4. Collect all URLs mentioned

Return ONLY a valid JSON object with these keys (no markdown, no extra text):
{
    "name": "Official meme name",
    "about": "What this meme is (2-3 sentences)",
    "origin": "Where it came from and when (2-3 sentences)",
    "usage": "How it's typically used (2-3 sentences)",
    "sources": ["url1", "url2", ...]
}

Be concise and factual. Only include information that appears in the raw data.
IMPORTANT: Return ONLY the JSON object, nothing else.`

// Curator distills the fetcher's raw report into a normalized fact record via
// one low-temperature completion with a strict output contract.
type Curator struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ ports.Curator = (*Curator)(nil)

// New constructs a curator on top of a completion client.
func New(completer ports.Completer, logger *slog.Logger) *Curator {
	return &Curator{completer: completer, logger: logger}
}

// Curate never propagates a contract violation: when the model's output is
// not the demanded JSON object, it degrades to a sentinel record so the
// explainer still receives a well-formed input. Transport and quota errors
// from the completion itself do propagate.
func (c *Curator) Curate(ctx context.Context, topic, rawText string) (domain.CuratedRecord, error) {
	out, err := c.completer.Complete(ctx, systemPrompt, "Raw data:\n\n"+rawText, extractionTemperature)
	if err != nil {
		return domain.CuratedRecord{}, fmt.Errorf("curate %q: %w", topic, err)
	}

	var record domain.CuratedRecord
	if err := json.Unmarshal(cleanJSON([]byte(out)), &record); err != nil {
		c.warn("curator output is not valid JSON, degrading", "topic", topic, "error", err)
		return domain.DegradedRecord(topic), nil
	}

	if strings.TrimSpace(record.Name) == "" {
		record.Name = topic
	}
	if strings.TrimSpace(record.About) == "" {
		record.About = domain.SentinelUnavailable
	}
	if strings.TrimSpace(record.Origin) == "" {
		record.Origin = domain.SentinelUnavailable
	}
	if strings.TrimSpace(record.Usage) == "" {
		record.Usage = domain.SentinelUnavailable
	}
	if record.Sources == nil {
		record.Sources = []string{}
	}

	return record, nil
}

func (c *Curator) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
