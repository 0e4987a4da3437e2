package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"memexplainer/internal/domain"
)

type fakeRunner struct {
	state        domain.PipelineState
	err          error
	lastTopic    string
	lastRegister domain.Register
	calls        int
}

func (f *fakeRunner) Run(_ context.Context, topic string, register domain.Register) (domain.PipelineState, error) {
	f.calls++
	f.lastTopic = topic
	f.lastRegister = register
	return f.state, f.err
}

type fakeVideos struct {
	videos  []domain.Video
	err     error
	lastMax int
}

func (f *fakeVideos) Search(_ context.Context, _ string, maxResults int) ([]domain.Video, error) {
	f.lastMax = maxResults
	return f.videos, f.err
}

func newTestServer(runner *fakeRunner, videos *fakeVideos) *httptest.Server {
	return httptest.NewServer(New(runner, videos, nil).Handler())
}

func TestExplainHappyPath(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{state: domain.PipelineState{
		Curated:     domain.CuratedRecord{Name: "Drakeposting", About: "a", Origin: "b", Usage: "c"},
		Explanation: "the explanation",
	}}
	server := newTestServer(runner, &fakeVideos{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/explain/explanation?topic=drake+meme&sociolect=gen-z")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		MemeName    string `json:"meme_name"`
		Explanation string `json:"explanation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.MemeName != "Drakeposting" || body.Explanation != "the explanation" {
		t.Fatalf("unexpected body: %+v", body)
	}

	if runner.lastTopic != "drake meme" || runner.lastRegister != domain.RegisterGenZ {
		t.Fatalf("pipeline called with topic=%q register=%q", runner.lastTopic, runner.lastRegister)
	}
}

func TestExplainRejectsInvalidRegister(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	server := newTestServer(runner, &fakeVideos{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/explain/explanation?topic=drake&sociolect=zoomer")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if runner.calls != 0 {
		t.Fatalf("pipeline must not run on invalid register, ran %d times", runner.calls)
	}
}

func TestExplainRequiresTopic(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeRunner{}, &fakeVideos{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/explain/explanation?sociolect=gen-z")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExplainPipelineFailureIsGeneric500(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("openai error 429: quota")}
	server := newTestServer(runner, &fakeVideos{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/explain/explanation?topic=drake&sociolect=boomer")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Detail != "Error processing meme explanation" {
		t.Fatalf("internal error detail leaked: %q", body.Detail)
	}
}

func TestMediaVideosDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	videos := &fakeVideos{videos: []domain.Video{{Title: "v1", VideoID: "a"}, {Title: "v2", VideoID: "b"}}}
	server := newTestServer(&fakeRunner{}, videos)
	defer server.Close()

	resp, err := http.Get(server.URL + "/media/videos?topic=drake")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if videos.lastMax != 3 {
		t.Fatalf("default max_results = %d, want 3", videos.lastMax)
	}

	var body struct {
		MemeName      string         `json:"meme_name"`
		YouTubeVideos []domain.Video `json:"youtube_videos"`
		TotalResults  int            `json:"total_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.MemeName != "drake" || body.TotalResults != 2 || len(body.YouTubeVideos) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}

	for _, bad := range []string{"0", "11", "-1", "three"} {
		resp, err := http.Get(server.URL + "/media/videos?topic=drake&max_results=" + bad)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("max_results=%s: status = %d, want 400", bad, resp.StatusCode)
		}
	}
}

func TestYouTubeEndpointReturnsBareList(t *testing.T) {
	t.Parallel()

	videos := &fakeVideos{videos: []domain.Video{{Title: "v1", VideoID: "a", Platform: "youtube"}}}
	server := newTestServer(&fakeRunner{}, videos)
	defer server.Close()

	resp, err := http.Get(server.URL + "/media/youtube?topic=drake&max_results=1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body []domain.Video
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0].VideoID != "a" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeRunner{}, &fakeVideos{})
	defer server.Close()

	for _, path := range []string{"/", "/health"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("request %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, resp.StatusCode)
		}
	}
}
