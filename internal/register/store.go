package register

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

// NoPatternsFound is returned by FormatContext when the query yields nothing.
const NoPatternsFound = "No specific language patterns found."

const collectionPrefix = "sociolect_"

// Store is the language-register store: one vector collection per register,
// holding short example phrases tagged by category. It is read-mostly and
// safe for concurrent queries; seeding is the only write path and upserts by
// stable ID, so concurrent startups converge on the same contents.
type Store struct {
	vectors     ports.VectorStore
	embedder    ports.Embedder
	collections map[domain.Register]string
	logger      *slog.Logger
}

var _ ports.RegisterContext = (*Store)(nil)

// NewStore connects all four partitions and auto-seeds any empty one with the
// built-in pattern set. Errors here are fatal to the caller: the store is
// mandatory infrastructure, not an optional enhancement.
func NewStore(ctx context.Context, vectors ports.VectorStore, embedder ports.Embedder, logger *slog.Logger) (*Store, error) {
	s := &Store{
		vectors:     vectors,
		embedder:    embedder,
		collections: make(map[domain.Register]string, len(domain.Registers())),
		logger:      logger,
	}

	for _, reg := range domain.Registers() {
		id, err := vectors.EnsureCollection(ctx, collectionPrefix+string(reg), map[string]string{
			"description": fmt.Sprintf("Language patterns for %s", reg),
		})
		if err != nil {
			return nil, fmt.Errorf("register store: %w", err)
		}
		s.collections[reg] = id
	}

	for _, reg := range domain.Registers() {
		count, err := vectors.Count(ctx, s.collections[reg])
		if err != nil {
			return nil, fmt.Errorf("register store: %w", err)
		}
		if count > 0 {
			continue
		}
		s.debug("seeding empty register partition", "register", reg)
		if err := s.Seed(ctx, reg, BuiltinPatterns(reg)); err != nil {
			return nil, fmt.Errorf("register store: %w", err)
		}
	}

	return s, nil
}

// Seed bulk-inserts examples for a register. IDs derive from register,
// ordinal, and category, so re-seeding the same set is a no-op.
func (s *Store) Seed(ctx context.Context, register domain.Register, examples []domain.RegisterExample) error {
	collectionID, ok := s.collections[register]
	if !ok {
		return fmt.Errorf("seed: %w", domain.ErrInvalidRegister)
	}
	if len(examples) == 0 {
		return nil
	}

	texts := make([]string, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
	}

	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed seed examples: %w", err)
	}

	records := make([]ports.VectorRecord, len(examples))
	for i, ex := range examples {
		category := ex.Category
		if category == "" {
			category = "general"
		}
		records[i] = ports.VectorRecord{
			ID:        fmt.Sprintf("%s_%d_%s", register, i, category),
			Embedding: embeddings[i],
			Document:  ex.Text,
			Metadata: map[string]string{
				"category":  category,
				"context":   ex.Context,
				"sociolect": string(register),
			},
		}
	}

	if err := s.vectors.Upsert(ctx, collectionID, records); err != nil {
		return fmt.Errorf("seed %s: %w", register, err)
	}
	return nil
}

// SeedAll force-seeds every register with the built-in pattern set.
func (s *Store) SeedAll(ctx context.Context) error {
	for _, reg := range domain.Registers() {
		if err := s.Seed(ctx, reg, BuiltinPatterns(reg)); err != nil {
			return err
		}
	}
	return nil
}

// Query returns up to k examples nearest to text within the register's
// partition, each annotated with its distance.
func (s *Store) Query(ctx context.Context, register domain.Register, text string, k int) ([]domain.RegisterExample, error) {
	return s.query(ctx, register, text, k, "")
}

// QueryCategory is Query restricted to a single category tag.
func (s *Store) QueryCategory(ctx context.Context, register domain.Register, text string, k int, category string) ([]domain.RegisterExample, error) {
	return s.query(ctx, register, text, k, category)
}

func (s *Store) query(ctx context.Context, register domain.Register, text string, k int, category string) ([]domain.RegisterExample, error) {
	collectionID, ok := s.collections[register]
	if !ok {
		return nil, fmt.Errorf("query: %w", domain.ErrInvalidRegister)
	}

	embeddings, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embed query: expected 1 vector, got %d", len(embeddings))
	}

	var where map[string]string
	if category != "" {
		where = map[string]string{"category": category}
	}

	matches, err := s.vectors.Query(ctx, collectionID, embeddings[0], k, where)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", register, err)
	}

	examples := make([]domain.RegisterExample, 0, len(matches))
	for _, m := range matches {
		ex := domain.RegisterExample{
			Text:     m.Document,
			Category: "general",
			Distance: m.Distance,
		}
		if m.Metadata != nil {
			if c := m.Metadata["category"]; c != "" {
				ex.Category = c
			}
			ex.Context = m.Metadata["context"]
		}
		examples = append(examples, ex)
	}

	return examples, nil
}

// FormatContext renders the query result as a prompt-ready block, grouped by
// category. Returns NoPatternsFound exactly when the query is empty.
func (s *Store) FormatContext(ctx context.Context, register domain.Register, text string, k int) (string, error) {
	examples, err := s.Query(ctx, register, text, k)
	if err != nil {
		return "", err
	}
	if len(examples) == 0 {
		return NoPatternsFound, nil
	}

	grouped := make(map[string][]domain.RegisterExample)
	categories := make([]string, 0, 4)
	for _, ex := range examples {
		if _, seen := grouped[ex.Category]; !seen {
			categories = append(categories, ex.Category)
		}
		grouped[ex.Category] = append(grouped[ex.Category], ex)
	}
	sort.Strings(categories)

	lines := []string{fmt.Sprintf("Language patterns for %s:", register)}
	for _, category := range categories {
		lines = append(lines, "", strings.ToUpper(category)+":")
		for _, ex := range grouped[category] {
			line := "  - " + ex.Text
			if ex.Context != "" {
				line += fmt.Sprintf(" (use when: %s)", ex.Context)
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func (s *Store) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
