package explainer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memexplainer/internal/domain"
)

type fakeCompleter struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	lastTemp   float64
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string, temperature float64) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	f.lastTemp = temperature
	return f.response, f.err
}

type fakeRegisterContext struct {
	context  string
	err      error
	lastReg  domain.Register
	lastText string
	lastK    int
}

func (f *fakeRegisterContext) Query(context.Context, domain.Register, string, int) ([]domain.RegisterExample, error) {
	return nil, nil
}

func (f *fakeRegisterContext) FormatContext(_ context.Context, register domain.Register, text string, k int) (string, error) {
	f.lastReg = register
	f.lastText = text
	f.lastK = k
	return f.context, f.err
}

func curatedFixture() domain.CuratedRecord {
	return domain.CuratedRecord{
		Name:   "Drakeposting",
		About:  "A reaction meme.",
		Origin: "Hotline Bling, 2015.",
		Usage:  "Contrasting two options.",
		Sources: []string{
			"https://knowyourmeme.com/memes/drakeposting",
			"https://knowyourmeme.com/memes/drake",
		},
	}
}

func TestExplainAppendsSourcesWhenMissing(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "Drakeposting is a meme about choosing."}
	registers := &fakeRegisterContext{context: "Language patterns for gen-z:"}

	out, err := New(completer, registers, nil).Explain(context.Background(), curatedFixture(), "drake meme", domain.RegisterGenZ)
	require.NoError(t, err)

	idx := strings.Index(out, "Sources")
	require.GreaterOrEqual(t, idx, 0, "output must contain a Sources section:\n%s", out)

	rest := out[idx:]
	first := strings.Index(rest, "https://knowyourmeme.com/memes/drakeposting")
	second := strings.Index(rest, "https://knowyourmeme.com/memes/drake\n")
	if second < 0 {
		second = strings.LastIndex(rest, "https://knowyourmeme.com/memes/drake")
	}
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first, "sources must appear in curated order")
}

func TestExplainKeepsModelSourcesWhenComplete(t *testing.T) {
	t.Parallel()

	body := "Explanation text.\n\n## Sources\n\n- https://knowyourmeme.com/memes/drakeposting\n- https://knowyourmeme.com/memes/drake"
	completer := &fakeCompleter{response: body}
	registers := &fakeRegisterContext{context: "ctx"}

	out, err := New(completer, registers, nil).Explain(context.Background(), curatedFixture(), "drake meme", domain.RegisterGenZ)
	require.NoError(t, err)
	assert.Equal(t, body, out)
}

func TestExplainEmptySourcesStillRendersSection(t *testing.T) {
	t.Parallel()

	curated := domain.DegradedRecord("mystery meme")
	completer := &fakeCompleter{response: "Not much is known."}
	registers := &fakeRegisterContext{context: "ctx"}

	out, err := New(completer, registers, nil).Explain(context.Background(), curated, "mystery meme", domain.RegisterBoomer)
	require.NoError(t, err)
	assert.Contains(t, out, "Sources", "empty source list still renders the section header")
}

func TestExplainUsesRegisterPolicyAndContext(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "ok"}
	registers := &fakeRegisterContext{context: "PATTERN-BLOCK"}

	_, err := New(completer, registers, nil).Explain(context.Background(), curatedFixture(), "drake meme", domain.RegisterBoomer)
	require.NoError(t, err)

	assert.Equal(t, domain.RegisterBoomer, registers.lastReg)
	assert.Equal(t, "drake meme", registers.lastText)
	assert.Equal(t, 8, registers.lastK)

	assert.Contains(t, completer.lastSystem, "Baby Boomers")
	assert.Contains(t, completer.lastSystem, "NO slang")
	assert.Contains(t, completer.lastSystem, "PATTERN-BLOCK")
	assert.Contains(t, completer.lastUser, "Drakeposting")
	assert.InDelta(t, 0.7, completer.lastTemp, 1e-9)
}

func TestExplainPropagatesContextFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("store unreachable")
	completer := &fakeCompleter{response: "unused"}
	registers := &fakeRegisterContext{err: wantErr}

	_, err := New(completer, registers, nil).Explain(context.Background(), curatedFixture(), "x", domain.RegisterGenX)
	assert.ErrorIs(t, err, wantErr)
}

func TestPolicyForCoversAllRegistersAndLengthOrdering(t *testing.T) {
	t.Parallel()

	boomer := PolicyFor(domain.RegisterBoomer)
	genZ := PolicyFor(domain.RegisterGenZ)

	assert.Equal(t, "3-4 short paragraphs", boomer.Paragraphs)
	assert.Equal(t, "2 short paragraphs", genZ.Paragraphs)

	for _, reg := range domain.Registers() {
		policy := PolicyFor(reg)
		assert.NotEmpty(t, policy.Prompt, "policy prompt for %s", reg)
		assert.NotEmpty(t, policy.Tone, "policy tone for %s", reg)
	}

	assert.Equal(t, genZ, PolicyFor(domain.Register("unknown")), "unknown register defaults to gen-z")
}
