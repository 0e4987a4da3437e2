package kym

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"memexplainer/internal/config"
	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

// The search endpoint rejects default Go user agents, so requests present a
// browser-like one.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Scanner researches a topic on Know Your Meme: one search request, then the
// entry pages of the top hits, assembled into a single report.
type Scanner struct {
	client       *http.Client
	baseURL      string
	searchLimit  int
	reportLimit  int
	sectionLimit int
	logger       *slog.Logger
}

var _ ports.MemeSource = (*Scanner)(nil)

// NewScanner wires an HTTP client; limits default from config.
func NewScanner(client *http.Client, cfg config.SourceConfig, logger *slog.Logger) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://knowyourmeme.com"
	}
	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 5
	}
	reportLimit := cfg.ReportLimit
	if reportLimit <= 0 {
		reportLimit = 3
	}
	sectionLimit := cfg.SectionLimit
	if sectionLimit <= 0 {
		sectionLimit = 800
	}

	return &Scanner{
		client:       client,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		searchLimit:  searchLimit,
		reportLimit:  reportLimit,
		sectionLimit: sectionLimit,
		logger:       logger,
	}
}

// Research searches for the topic and fetches each hit's entry page. Failures
// on individual entries are logged and skipped; zero resolved candidates map
// to domain.ErrNoResults so callers can distinguish them from transport
// errors without string matching.
func (s *Scanner) Research(ctx context.Context, topic string) (domain.RawReport, error) {
	searchURL := fmt.Sprintf("%s/search?%s", s.baseURL, url.Values{"q": {topic}}.Encode())

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return domain.RawReport{}, fmt.Errorf("search %q: %w", topic, err)
	}

	hits := s.extractHits(doc)
	if len(hits) == 0 {
		return domain.RawReport{}, fmt.Errorf("topic %q: %w", topic, domain.ErrNoResults)
	}

	candidates := s.fetchCandidates(ctx, hits)
	if len(candidates) == 0 {
		return domain.RawReport{}, fmt.Errorf("topic %q: %w", topic, domain.ErrNoResults)
	}

	if len(candidates) > s.reportLimit {
		candidates = candidates[:s.reportLimit]
	}

	sources := make([]string, 0, len(candidates))
	for _, c := range candidates {
		sources = append(sources, c.URL)
	}

	return domain.RawReport{
		Text:       buildReport(topic, candidates),
		Candidates: candidates,
		Sources:    sources,
	}, nil
}

type searchHit struct {
	title string
	url   string
}

func (s *Scanner) extractHits(doc *goquery.Document) []searchHit {
	var hits []searchHit

	doc.Find(`a.item[href*="/memes/"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(hits) >= s.searchLimit {
			return false
		}

		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}
		if !strings.HasPrefix(href, "http") {
			href = s.baseURL + href
		}

		title := strings.TrimSpace(sel.AttrOr("data-title", ""))
		if title == "" {
			text := strings.TrimSpace(sel.Text())
			if idx := strings.IndexByte(text, '\n'); idx >= 0 {
				text = text[:idx]
			}
			title = strings.TrimSpace(text)
		}
		if title == "" {
			title = "Unknown"
		}

		hits = append(hits, searchHit{title: title, url: href})
		return true
	})

	return hits
}

// fetchCandidates loads entry pages in parallel but keeps the assembled slice
// in search-rank order, independent of completion order.
func (s *Scanner) fetchCandidates(ctx context.Context, hits []searchHit) []domain.RawCandidate {
	slots := make([]*domain.RawCandidate, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.searchLimit)

	for i, hit := range hits {
		i, hit := i, hit
		g.Go(func() error {
			doc, err := s.fetchDocument(gctx, hit.url)
			if err != nil {
				s.warn("fetch meme page", "url", hit.url, "error", err)
				return nil
			}

			about := s.extractSection(doc, "about")
			if about == "" {
				about = domain.SentinelNoAbout
			}
			origin := s.extractSection(doc, "origin")
			if origin == "" {
				origin = domain.SentinelNoOrigin
			}

			slots[i] = &domain.RawCandidate{
				Title:  hit.title,
				URL:    hit.url,
				About:  about,
				Origin: origin,
			}
			return nil
		})
	}
	_ = g.Wait()

	candidates := make([]domain.RawCandidate, 0, len(hits))
	for _, slot := range slots {
		if slot != nil {
			candidates = append(candidates, *slot)
		}
	}
	return candidates
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowyourmeme returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// extractSection takes the first paragraph following the section heading
// (h2#about, h2#origin) and truncates it to the configured cap.
func (s *Scanner) extractSection(doc *goquery.Document, id string) string {
	header := doc.Find("h2#" + id).First()
	if header.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(header.NextAllFiltered("p").First().Text())
	if runes := []rune(text); len(runes) > s.sectionLimit {
		text = string(runes[:s.sectionLimit])
	}
	return text
}

func buildReport(topic string, candidates []domain.RawCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Know Your Meme results for '%s':\n\n", topic)

	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Title)
		fmt.Fprintf(&b, "   URL: %s\n\n", c.URL)
		fmt.Fprintf(&b, "   ABOUT:\n   %s\n\n", c.About)
		fmt.Fprintf(&b, "   ORIGIN:\n   %s\n\n", c.Origin)
		b.WriteString(strings.Repeat("-", 70) + "\n\n")
	}

	return b.String()
}

func (s *Scanner) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
