package summarizer

import "yt-summarizer/internal/models"

// Session is the explicit per-session state object: everything one
// analysis run leaves behind for the presentation layer. The pipeline
// owns updates to it; a new run invalidates and replaces its contents.
// A session holds at most one content payload and one result.
type Session struct {
	VideoID   string
	SourceURL string
	Meta      models.VideoMetadata
	Payload   *models.ContentPayload
	Result    *models.AnalysisResult

	// GeneratedTranscript is the on-demand verbatim transcript for
	// audio runs; empty until requested.
	GeneratedTranscript string
}

// Reset clears everything a previous run left behind.
func (s *Session) Reset() {
	s.VideoID = ""
	s.SourceURL = ""
	s.Meta = models.VideoMetadata{}
	s.Payload = nil
	s.Result = nil
	s.GeneratedTranscript = ""
}

// TranscriptText returns the displayable transcript: the fetched
// caption text for text runs, or the generated one for audio runs.
func (s *Session) TranscriptText() string {
	if s.Payload != nil && s.Payload.Kind == models.ContentText {
		return s.Payload.Text
	}
	return s.GeneratedTranscript
}

// WordCount counts transcript words for the metrics card; 0 when no
// textual transcript exists.
func (s *Session) WordCount() int {
	text := s.TranscriptText()
	if text == "" {
		return 0
	}
	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			inWord = false
		case !inWord:
			inWord = true
			count++
		}
	}
	return count
}
