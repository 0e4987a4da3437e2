package domain

import (
	"errors"
	"fmt"
)

// Register is the audience cohort an explanation is written for.
type Register string

const (
	RegisterBoomer    Register = "boomer"
	RegisterGenX      Register = "gen-x"
	RegisterMillenial Register = "millenial"
	RegisterGenZ      Register = "gen-z"
)

// ErrInvalidRegister signals a register value outside the closed set.
var ErrInvalidRegister = errors.New("invalid register")

// ErrNoResults signals that a source lookup resolved zero candidates.
var ErrNoResults = errors.New("no results")

// Registers lists the supported cohorts, oldest first.
func Registers() []Register {
	return []Register{RegisterBoomer, RegisterGenX, RegisterMillenial, RegisterGenZ}
}

// ParseRegister validates a raw register value at the boundary.
func ParseRegister(value string) (Register, error) {
	for _, r := range Registers() {
		if string(r) == value {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of boomer, gen-x, millenial, gen-z)", ErrInvalidRegister, value)
}

// Sentinel texts substituted when extraction fails, preserving the
// non-empty-field invariant on curated records.
const (
	SentinelUnavailable = "Information unavailable"
	SentinelNoAbout     = "No description available"
	SentinelNoOrigin    = "No origin information available"
)

// RawCandidate is a single search hit with the two extracted page sections.
type RawCandidate struct {
	Title  string
	URL    string
	About  string
	Origin string
}

// RawReport is the fetcher's output: the formatted text blob handed to the
// curator plus the candidates and source URLs it was assembled from.
type RawReport struct {
	Text       string
	Candidates []RawCandidate
	Sources    []string
}

// CuratedRecord is the normalized fact summary extracted by the curator.
// All four text fields are non-empty; Sources may hold duplicates.
type CuratedRecord struct {
	Name    string   `json:"name"`
	About   string   `json:"about"`
	Origin  string   `json:"origin"`
	Usage   string   `json:"usage"`
	Sources []string `json:"sources"`
}

// DegradedRecord is the fallback when curation cannot produce a structured
// record. Later stages must tolerate it without special-casing.
func DegradedRecord(topic string) CuratedRecord {
	return CuratedRecord{
		Name:    topic,
		About:   SentinelUnavailable,
		Origin:  SentinelUnavailable,
		Usage:   SentinelUnavailable,
		Sources: []string{},
	}
}

// RegisterExample is a short phrase, keyword, or tone sample tagged to a
// register, used to condition the explainer's style.
type RegisterExample struct {
	Text     string
	Category string
	Context  string
	Distance float64
}

// PipelineState is the carrier threaded through the three pipeline stages.
// Each stage populates its own fields; no stage mutates a prior stage's output.
type PipelineState struct {
	Topic       string
	Register    Register
	RawData     string
	Curated     CuratedRecord
	Explanation string
	Sources     []string
}

// Video is a single video-platform search result.
type Video struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
	Type      string `json:"type"`
	Platform  string `json:"platform"`
	VideoID   string `json:"video_id"`
}
