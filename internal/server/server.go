package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

// PipelineRunner is the service's view of the research pipeline.
type PipelineRunner interface {
	Run(ctx context.Context, topic string, register domain.Register) (domain.PipelineState, error)
}

// Server exposes the explanation pipeline and video search over HTTP.
type Server struct {
	pipeline PipelineRunner
	videos   ports.VideoSource
	logger   *slog.Logger
}

// New wires handlers to their collaborators.
func New(pipeline PipelineRunner, videos ports.VideoSource, logger *slog.Logger) *Server {
	return &Server{pipeline: pipeline, videos: videos, logger: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /explain/explanation", s.handleExplain)
	mux.HandleFunc("GET /media/videos", s.handleMediaVideos)
	mux.HandleFunc("GET /media/youtube", s.handleYouTube)
	return mux
}

type explanationResponse struct {
	MemeName    string `json:"meme_name"`
	Explanation string `json:"explanation"`
}

type mediaVideosResponse struct {
	MemeName      string         `json:"meme_name"`
	YouTubeVideos []domain.Video `json:"youtube_videos"`
	TotalResults  int            `json:"total_results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "active",
		"service": "Meme Explanation API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"pipeline": "ready",
		"endpoints": map[string]string{
			"explain": "/explain/explanation?topic={topic}&sociolect={sociolect}",
			"videos":  "/media/videos?topic={topic}",
			"youtube": "/media/youtube?topic={topic}",
		},
	})
}

// handleExplain validates both query parameters before the pipeline runs:
// a register outside the closed set is a client error, never a pipeline crash.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "topic query parameter is required"})
		return
	}

	register, err := domain.ParseRegister(r.URL.Query().Get("sociolect"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRegister) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Error processing meme explanation"})
		return
	}

	state, err := s.pipeline.Run(r.Context(), topic, register)
	if err != nil {
		s.error("pipeline run failed", "topic", topic, "register", register, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Error processing meme explanation"})
		return
	}

	writeJSON(w, http.StatusOK, explanationResponse{
		MemeName:    state.Curated.Name,
		Explanation: state.Explanation,
	})
}

func (s *Server) handleMediaVideos(w http.ResponseWriter, r *http.Request) {
	topic, maxResults, ok := s.videoParams(w, r)
	if !ok {
		return
	}

	videos, err := s.videos.Search(r.Context(), topic, maxResults)
	if err != nil {
		s.error("video search failed", "topic", topic, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Error fetching videos"})
		return
	}

	writeJSON(w, http.StatusOK, mediaVideosResponse{
		MemeName:      topic,
		YouTubeVideos: videos,
		TotalResults:  len(videos),
	})
}

func (s *Server) handleYouTube(w http.ResponseWriter, r *http.Request) {
	topic, maxResults, ok := s.videoParams(w, r)
	if !ok {
		return
	}

	videos, err := s.videos.Search(r.Context(), topic, maxResults)
	if err != nil {
		s.error("video search failed", "topic", topic, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Error fetching YouTube videos"})
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) videoParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "topic query parameter is required"})
		return "", 0, false
	}

	maxResults := 3
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "max_results must be an integer between 1 and 10"})
			return "", 0, false
		}
		maxResults = parsed
	}

	return topic, maxResults, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) error(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
