package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"memexplainer/internal/config"
	"memexplainer/internal/ports"
)

// Client speaks the Chroma Cloud v2 collection API. It is a plain transport:
// embeddings are computed by the caller and passed through verbatim.
type Client struct {
	baseURL    string
	apiKey     string
	tenant     string
	database   string
	httpClient *http.Client
}

var _ ports.VectorStore = (*Client)(nil)

// NewClient validates credentials up front. The vector store is mandatory
// infrastructure: a missing key, tenant, or database must stop the process
// before it serves anything.
func NewClient(cfg config.ChromaConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chroma: CHROMA_API_KEY is required")
	}
	if cfg.Tenant == "" {
		return nil, fmt.Errorf("chroma: CHROMA_TENANT is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("chroma: CHROMA_DATABASE is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.trychroma.com"
	}

	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   cfg.APIKey,
		tenant:   cfg.Tenant,
		database: cfg.Database,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// EnsureCollection creates the named collection if absent and returns its ID.
func (c *Client) EnsureCollection(ctx context.Context, name string, metadata map[string]string) (string, error) {
	payload := map[string]any{
		"name":          name,
		"get_or_create": true,
	}
	if len(metadata) > 0 {
		payload["metadata"] = metadata
	}

	var resp struct {
		ID string `json:"id"`
	}

	if err := c.do(ctx, http.MethodPost, c.collectionsPath(), payload, &resp); err != nil {
		return "", fmt.Errorf("ensure collection %s: %w", name, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("ensure collection %s: empty id in response", name)
	}

	return resp.ID, nil
}

// Count returns the number of records in a collection.
func (c *Client) Count(ctx context.Context, collectionID string) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, c.collectionsPath()+"/"+collectionID+"/count", nil, &count); err != nil {
		return 0, fmt.Errorf("count collection %s: %w", collectionID, err)
	}
	return count, nil
}

// Upsert writes records keyed by their stable IDs; re-sending the same batch
// leaves the collection unchanged.
func (c *Client) Upsert(ctx context.Context, collectionID string, records []ports.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, len(records))
	embeddings := make([][]float32, len(records))
	documents := make([]string, len(records))
	metadatas := make([]map[string]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		embeddings[i] = rec.Embedding
		documents[i] = rec.Document
		metadatas[i] = rec.Metadata
	}

	payload := map[string]any{
		"ids":        ids,
		"embeddings": embeddings,
		"documents":  documents,
		"metadatas":  metadatas,
	}

	if err := c.do(ctx, http.MethodPost, c.collectionsPath()+"/"+collectionID+"/upsert", payload, nil); err != nil {
		return fmt.Errorf("upsert into %s: %w", collectionID, err)
	}
	return nil
}

// Query runs a nearest-neighbor lookup and returns matches in distance order.
func (c *Client) Query(ctx context.Context, collectionID string, embedding []float32, k int, where map[string]string) ([]ports.VectorMatch, error) {
	payload := map[string]any{
		"query_embeddings": [][]float32{embedding},
		"n_results":        k,
		"include":          []string{"documents", "metadatas", "distances"},
	}
	if len(where) > 0 {
		payload["where"] = where
	}

	var resp struct {
		Documents [][]string            `json:"documents"`
		Metadatas [][]map[string]string `json:"metadatas"`
		Distances [][]float64           `json:"distances"`
	}

	if err := c.do(ctx, http.MethodPost, c.collectionsPath()+"/"+collectionID+"/query", payload, &resp); err != nil {
		return nil, fmt.Errorf("query %s: %w", collectionID, err)
	}

	if len(resp.Documents) == 0 {
		return nil, nil
	}

	matches := make([]ports.VectorMatch, 0, len(resp.Documents[0]))
	for i, doc := range resp.Documents[0] {
		match := ports.VectorMatch{Document: doc}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			match.Metadata = resp.Metadatas[0][i]
		}
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			match.Distance = resp.Distances[0][i]
		}
		matches = append(matches, match)
	}

	return matches, nil
}

func (c *Client) collectionsPath() string {
	return fmt.Sprintf("%s/api/v2/tenants/%s/databases/%s/collections", c.baseURL, c.tenant, c.database)
}

func (c *Client) do(ctx context.Context, method, url string, payload, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Chroma-Token", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("chroma error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
