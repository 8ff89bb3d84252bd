package models

import (
	"fmt"
	"time"
)

// VideoMetadata holds the display metadata for a video. It is created
// once by the metadata fetcher and never mutated afterwards.
type VideoMetadata struct {
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
}

// SentinelMetadata is returned whenever metadata extraction fails.
// Metadata failures never abort an analysis run.
func SentinelMetadata() VideoMetadata {
	return VideoMetadata{Title: "Unknown Title", DurationSeconds: 0}
}

// FormatDuration renders the duration as H:MM:SS (or "Unknown" when zero).
func (m VideoMetadata) FormatDuration() string {
	if m.DurationSeconds <= 0 {
		return "Unknown"
	}
	d := time.Duration(m.DurationSeconds) * time.Second
	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
}

// ContentKind tags which variant of ContentPayload is populated.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentAudio ContentKind = "audio"
)

// ContentPayload is the content handed to the analysis requester:
// either the full transcript text or the path of a downloaded audio
// file. Exactly one variant is populated per analysis run.
type ContentPayload struct {
	Kind      ContentKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	AudioPath string      `json:"audio_path,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func TextPayload(text string) ContentPayload {
	return ContentPayload{Kind: ContentText, Text: text, CreatedAt: time.Now()}
}

func AudioPayload(path string) ContentPayload {
	return ContentPayload{Kind: ContentAudio, AudioPath: path, CreatedAt: time.Now()}
}

// AnalysisMode selects both the instruction template sent to the model
// and the expected response shape.
type AnalysisMode string

const (
	ModePodcastAnalysis  AnalysisMode = "podcast"
	ModeGeneralSummary   AnalysisMode = "general"
	ModeBulletSummary    AnalysisMode = "bullet"
	ModeTimestampSummary AnalysisMode = "timestamp"
	ModeKeyInsights      AnalysisMode = "insights"
)

// Modes lists all selectable modes in display order.
func Modes() []AnalysisMode {
	return []AnalysisMode{
		ModePodcastAnalysis,
		ModeGeneralSummary,
		ModeBulletSummary,
		ModeTimestampSummary,
		ModeKeyInsights,
	}
}

func (m AnalysisMode) Valid() bool {
	switch m {
	case ModePodcastAnalysis, ModeGeneralSummary, ModeBulletSummary, ModeTimestampSummary, ModeKeyInsights:
		return true
	}
	return false
}

// Structured reports whether the mode expects a JSON response.
func (m AnalysisMode) Structured() bool {
	return m == ModePodcastAnalysis
}

// DisplayName is the human-readable label used in the dashboard.
func (m AnalysisMode) DisplayName() string {
	switch m {
	case ModePodcastAnalysis:
		return "Podcast Analysis"
	case ModeGeneralSummary:
		return "General Summary"
	case ModeBulletSummary:
		return "Bullet Summary"
	case ModeTimestampSummary:
		return "Timestamp Summary"
	case ModeKeyInsights:
		return "Key Insights"
	}
	return string(m)
}

// ExportFilename is the fixed filename for the plain-text export of a
// result produced in this mode.
func (m AnalysisMode) ExportFilename() string {
	if m == ModePodcastAnalysis {
		return "podcast_summary.txt"
	}
	return "summary.txt"
}

// PodcastAnalysis is the structured record produced by Podcast Analysis
// mode. Host and guest percentages are reported exactly as the model
// returned them; they are not required to sum to 100.
type PodcastAnalysis struct {
	GuestName       string   `json:"guest_name"`
	GuestBio        string   `json:"guest_bio"`
	Questions       []string `json:"questions"`
	HostPercentage  float64  `json:"host_percentage"`
	GuestPercentage float64  `json:"guest_percentage"`
	Controversies   []string `json:"controversies"`
	Summary         string   `json:"summary"`
}

// AnalysisResult is what one completed run hands to the presentation
// layer: either a PodcastAnalysis record or normalized free text,
// tagged by the mode that produced it, plus the model that answered.
type AnalysisResult struct {
	Mode      AnalysisMode     `json:"mode"`
	Podcast   *PodcastAnalysis `json:"podcast,omitempty"`
	Text      string           `json:"text,omitempty"`
	ModelUsed string           `json:"model_used"`
}

// ExportText is the plain-text form of the result offered for download.
func (r *AnalysisResult) ExportText() string {
	if r.Podcast != nil {
		return r.Podcast.Summary
	}
	return r.Text
}
