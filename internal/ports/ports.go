package ports

import (
	"context"

	"memexplainer/internal/domain"
)

// MemeSource retrieves raw candidate documents for a topic from an external
// knowledge base and assembles them into a report.
type MemeSource interface {
	Research(ctx context.Context, topic string) (domain.RawReport, error)
}

// Completer issues a single system-prompted model completion.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Embedder converts texts into embedding vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorRecord is one document plus its embedding, keyed by a stable ID so
// repeated upserts stay idempotent.
type VectorRecord struct {
	ID        string
	Embedding []float32
	Document  string
	Metadata  map[string]string
}

// VectorMatch is a nearest-neighbor hit annotated with its distance.
type VectorMatch struct {
	Document string
	Metadata map[string]string
	Distance float64
}

// VectorStore is a remote collection API for embedding storage and knn lookup.
type VectorStore interface {
	EnsureCollection(ctx context.Context, name string, metadata map[string]string) (string, error)
	Count(ctx context.Context, collectionID string) (int, error)
	Upsert(ctx context.Context, collectionID string, records []VectorRecord) error
	Query(ctx context.Context, collectionID string, embedding []float32, k int, where map[string]string) ([]VectorMatch, error)
}

// RegisterContext retrieves register-specific language examples to condition
// the explainer's style.
type RegisterContext interface {
	Query(ctx context.Context, register domain.Register, text string, k int) ([]domain.RegisterExample, error)
	FormatContext(ctx context.Context, register domain.Register, text string, k int) (string, error)
}

// Curator distills raw fetched text into a normalized fact record.
type Curator interface {
	Curate(ctx context.Context, topic, rawText string) (domain.CuratedRecord, error)
}

// Explainer produces the final audience-tailored explanation.
type Explainer interface {
	Explain(ctx context.Context, curated domain.CuratedRecord, topic string, register domain.Register) (string, error)
}

// VideoSource looks up platform videos related to a topic.
type VideoSource interface {
	Search(ctx context.Context, topic string, maxResults int) ([]domain.Video, error)
}
