package models

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "Unknown"},
		{-5, "Unknown"},
		{59, "0:00:59"},
		{61, "0:01:01"},
		{3600, "1:00:00"},
		{3754, "1:02:34"},
		{36754, "10:12:34"},
	}

	for _, tt := range tests {
		m := VideoMetadata{DurationSeconds: tt.seconds}
		if got := m.FormatDuration(); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSentinelMetadata(t *testing.T) {
	m := SentinelMetadata()
	if m.Title != "Unknown Title" || m.DurationSeconds != 0 {
		t.Errorf("unexpected sentinel: %+v", m)
	}
	if m.FormatDuration() != "Unknown" {
		t.Errorf("sentinel duration = %q, want Unknown", m.FormatDuration())
	}
}

func TestAnalysisModeValid(t *testing.T) {
	for _, mode := range Modes() {
		if !mode.Valid() {
			t.Errorf("mode %q should be valid", mode)
		}
	}
	for _, mode := range []AnalysisMode{"", "summary", "Podcast Analysis"} {
		if mode.Valid() {
			t.Errorf("mode %q should be invalid", mode)
		}
	}
}

func TestAnalysisModeStructured(t *testing.T) {
	for _, mode := range Modes() {
		want := mode == ModePodcastAnalysis
		if got := mode.Structured(); got != want {
			t.Errorf("%s.Structured() = %v, want %v", mode, got, want)
		}
	}
}

func TestExportFilename(t *testing.T) {
	if got := ModePodcastAnalysis.ExportFilename(); got != "podcast_summary.txt" {
		t.Errorf("podcast filename = %q", got)
	}
	for _, mode := range []AnalysisMode{ModeGeneralSummary, ModeBulletSummary, ModeTimestampSummary, ModeKeyInsights} {
		if got := mode.ExportFilename(); got != "summary.txt" {
			t.Errorf("%s filename = %q, want summary.txt", mode, got)
		}
	}
}

func TestExportText(t *testing.T) {
	free := &AnalysisResult{Mode: ModeGeneralSummary, Text: "plain result"}
	if got := free.ExportText(); got != "plain result" {
		t.Errorf("free-text export = %q", got)
	}

	structured := &AnalysisResult{
		Mode:    ModePodcastAnalysis,
		Podcast: &PodcastAnalysis{Summary: "episode summary"},
		Text:    "raw json ignored",
	}
	if got := structured.ExportText(); got != "episode summary" {
		t.Errorf("podcast export = %q, want summary field", got)
	}
}

func TestPayloadConstructors(t *testing.T) {
	text := TextPayload("hello world")
	if text.Kind != ContentText || text.Text != "hello world" || text.AudioPath != "" {
		t.Errorf("unexpected text payload: %+v", text)
	}
	if text.CreatedAt.IsZero() {
		t.Error("text payload CreatedAt not set")
	}

	audio := AudioPayload("/tmp/audio_1.m4a")
	if audio.Kind != ContentAudio || audio.AudioPath != "/tmp/audio_1.m4a" || audio.Text != "" {
		t.Errorf("unexpected audio payload: %+v", audio)
	}
}
