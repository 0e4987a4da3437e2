package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"memexplainer/internal/config"
	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

// The results page embeds its data as a JS assignment; there is no public
// search endpoint without an API key.
var initialDataExpr = regexp.MustCompile(`var ytInitialData = (\{.*?\});`)

// Searcher scrapes the YouTube results page for meme-explainer videos.
// It fails soft: any transport or extraction problem yields an empty list,
// never an error, so the media endpoints stay best-effort.
type Searcher struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

var _ ports.VideoSource = (*Searcher)(nil)

// NewSearcher wires an HTTP client with a bounded timeout.
func NewSearcher(client *http.Client, cfg config.YouTubeConfig, logger *slog.Logger) *Searcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.youtube.com"
	}
	return &Searcher{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Search returns up to maxResults videos for "<topic> meme explained".
func (s *Searcher) Search(ctx context.Context, topic string, maxResults int) ([]domain.Video, error) {
	if maxResults <= 0 {
		maxResults = 3
	}

	query := url.Values{"search_query": {topic + " meme explained"}}
	searchURL := fmt.Sprintf("%s/results?%s", s.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		s.warn("build search request", "error", err)
		return []domain.Video{}, nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		s.warn("search request", "error", err)
		return []domain.Video{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.warn("search request", "status", resp.Status)
		return []domain.Video{}, nil
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		s.warn("read search page", "error", err)
		return []domain.Video{}, nil
	}

	match := initialDataExpr.FindSubmatch(page)
	if match == nil {
		s.warn("ytInitialData not found in response")
		return []domain.Video{}, nil
	}

	var data initialData
	if err := json.Unmarshal(match[1], &data); err != nil {
		s.warn("parse ytInitialData", "error", err)
		return []domain.Video{}, nil
	}

	return s.collect(data, maxResults), nil
}

type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []section `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type section struct {
	ItemSectionRenderer struct {
		Contents []item `json:"contents"`
	} `json:"itemSectionRenderer"`
}

type item struct {
	VideoRenderer *videoRenderer `json:"videoRenderer"`
}

type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []run `json:"runs"`
	} `json:"title"`
	OwnerText struct {
		Runs []run `json:"runs"`
	} `json:"ownerText"`
	Thumbnail struct {
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
	NavigationEndpoint struct {
		CommandMetadata struct {
			WebCommandMetadata struct {
				URL string `json:"url"`
			} `json:"webCommandMetadata"`
		} `json:"commandMetadata"`
	} `json:"navigationEndpoint"`
}

type run struct {
	Text string `json:"text"`
}

func (s *Searcher) collect(data initialData, maxResults int) []domain.Video {
	results := make([]domain.Video, 0, maxResults)

	for _, sec := range data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		for _, it := range sec.ItemSectionRenderer.Contents {
			if len(results) >= maxResults {
				return results
			}

			vr := it.VideoRenderer
			if vr == nil || vr.VideoID == "" {
				continue
			}

			title := "Unknown Title"
			if len(vr.Title.Runs) > 0 {
				title = vr.Title.Runs[0].Text
			}
			channel := "Unknown Channel"
			if len(vr.OwnerText.Runs) > 0 {
				channel = vr.OwnerText.Runs[0].Text
			}
			thumbnail := ""
			if n := len(vr.Thumbnail.Thumbnails); n > 0 {
				thumbnail = vr.Thumbnail.Thumbnails[n-1].URL
			}

			video := domain.Video{
				Title:     title,
				Channel:   channel,
				Thumbnail: thumbnail,
				Platform:  "youtube",
				VideoID:   vr.VideoID,
			}
			if strings.Contains(vr.NavigationEndpoint.CommandMetadata.WebCommandMetadata.URL, "shorts") {
				video.Type = "shorts"
				video.URL = "https://www.youtube.com/shorts/" + vr.VideoID
			} else {
				video.Type = "video"
				video.URL = "https://www.youtube.com/watch?v=" + vr.VideoID
			}

			results = append(results, video)
		}
	}

	return results
}

func (s *Searcher) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
