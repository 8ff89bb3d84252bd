package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/ai"
	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"
	"yt-summarizer/summarizer"
)

type fakePipeline struct {
	runErr        error
	transcribeErr error
	fill          func(*summarizer.Session)

	lastInput summarizer.RunInput
	lastKey   string
}

func (f *fakePipeline) Run(ctx context.Context, session *summarizer.Session, in summarizer.RunInput) error {
	f.lastInput = in
	if f.runErr != nil {
		return f.runErr
	}
	if f.fill != nil {
		f.fill(session)
	}
	return nil
}

func (f *fakePipeline) Transcribe(ctx context.Context, session *summarizer.Session, apiKey string) error {
	f.lastKey = apiKey
	if f.transcribeErr != nil {
		return f.transcribeErr
	}
	session.GeneratedTranscript = "generated words"
	return nil
}

func testServer(t *testing.T, pipeline *fakePipeline) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, HealthPort: 8081, DefaultLanguage: "English"},
	}
	srv, err := New(cfg, pipeline, monitoring.NewMonitor())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv
}

func postForm(handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestIndexRenders(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Smart YouTube Summarizer") {
		t.Error("page title missing")
	}
	for _, mode := range models.Modes() {
		if !strings.Contains(body, mode.DisplayName()) {
			t.Errorf("mode option %q missing", mode.DisplayName())
		}
	}
}

func TestIndexUnknownPath(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	pipeline := &fakePipeline{
		fill: func(s *summarizer.Session) {
			s.VideoID = "abc123def45"
			s.Meta = models.VideoMetadata{Title: "Some Talk", DurationSeconds: 90}
			payload := models.TextPayload("a b c")
			s.Payload = &payload
			s.Result = &models.AnalysisResult{
				Mode:      models.ModeGeneralSummary,
				Text:      "the summary text",
				ModelUsed: "gemini-2.5-flash",
			}
		},
	}
	srv := testServer(t, pipeline)

	rec := postForm(srv.handleAnalyze, "/analyze", url.Values{
		"url":      {"https://youtu.be/abc123def45"},
		"mode":     {"general"},
		"language": {"Spanish"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if pipeline.lastInput.Mode != models.ModeGeneralSummary {
		t.Errorf("mode = %q", pipeline.lastInput.Mode)
	}
	if pipeline.lastInput.Language != "Spanish" {
		t.Errorf("language = %q, want Spanish", pipeline.lastInput.Language)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "the summary text") {
		t.Error("result text missing from page")
	}
	if !strings.Contains(body, "gemini-2.5-flash") {
		t.Error("model name missing from page")
	}
	if !strings.Contains(body, "/download") {
		t.Error("download link missing")
	}
	if !strings.Contains(body, "img.youtube.com/vi/abc123def45") {
		t.Error("thumbnail missing")
	}
}

func TestRenderResultText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Timestamp link becomes an anchor",
			input:    "see [1:05](https://youtu.be/abc?t=65) here",
			expected: `see <a href="https://youtu.be/abc?t=65" target="_blank">1:05</a> here`,
		},
		{
			name:     "Plain text is escaped",
			input:    "a <script>alert(1)</script> trick",
			expected: "a &lt;script&gt;alert(1)&lt;/script&gt; trick",
		},
		{
			name:     "Non-seek markdown link stays literal",
			input:    "[click](https://example.com/evil)",
			expected: "[click](https://example.com/evil)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(renderResultText(tt.input)); got != tt.expected {
				t.Errorf("renderResultText(%q) =\n%q\nwant\n%q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAnalyzeRendersClickableTimestamps(t *testing.T) {
	pipeline := &fakePipeline{
		fill: func(s *summarizer.Session) {
			s.VideoID = "abc123def45"
			s.Result = &models.AnalysisResult{
				Mode:      models.ModeTimestampSummary,
				Text:      "intro at [1:05](https://youtu.be/abc123def45?t=65) wraps up",
				ModelUsed: "gemini-2.5-flash",
			}
		},
	}
	srv := testServer(t, pipeline)

	rec := postForm(srv.handleAnalyze, "/analyze", url.Values{
		"url":  {"https://youtu.be/abc123def45"},
		"mode": {"timestamp"},
	})

	body := rec.Body.String()
	if !strings.Contains(body, `<a href="https://youtu.be/abc123def45?t=65" target="_blank">1:05</a>`) {
		t.Error("timestamp anchor missing from rendered page")
	}
	if strings.Contains(body, "[1:05](https://youtu.be/abc123def45?t=65)") {
		t.Error("raw markdown link leaked into the rendered page")
	}
}

func TestAnalyzeDefaultsApplied(t *testing.T) {
	pipeline := &fakePipeline{
		fill: func(s *summarizer.Session) {
			s.Result = &models.AnalysisResult{Mode: models.ModeGeneralSummary, Text: "ok", ModelUsed: "m"}
		},
	}
	srv := testServer(t, pipeline)

	postForm(srv.handleAnalyze, "/analyze", url.Values{
		"url":  {"https://youtu.be/abc123def45"},
		"mode": {"bogus"},
	})

	if pipeline.lastInput.Mode != models.ModeGeneralSummary {
		t.Errorf("invalid mode not defaulted: %q", pipeline.lastInput.Mode)
	}
	if pipeline.lastInput.Language != "English" {
		t.Errorf("empty language not defaulted: %q", pipeline.lastInput.Language)
	}
}

func TestAnalyzeError(t *testing.T) {
	pipeline := &fakePipeline{runErr: summarizer.ErrNoVideoID}
	srv := testServer(t, pipeline)

	rec := postForm(srv.handleAnalyze, "/analyze", url.Values{"url": {"https://vimeo.com/1"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "YouTube video link") {
		t.Error("friendly error message missing")
	}
}

func TestAnalyzeGetRedirects(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	rec := httptest.NewRecorder()
	srv.handleAnalyze(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

func TestTranscribe(t *testing.T) {
	pipeline := &fakePipeline{}
	srv := testServer(t, pipeline)

	rec := postForm(srv.handleTranscribe, "/transcribe", url.Values{"api_key": {"user-key"}})

	if pipeline.lastKey != "user-key" {
		t.Errorf("api key = %q, want user-key", pipeline.lastKey)
	}
	if !strings.Contains(rec.Body.String(), "Transcript generated from audio.") {
		t.Error("success notice missing")
	}
}

func TestDownloadWithoutResult(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	rec := httptest.NewRecorder()
	srv.handleDownload(rec, httptest.NewRequest(http.MethodGet, "/download", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDownloadPodcastResult(t *testing.T) {
	srv := testServer(t, &fakePipeline{})
	srv.session.Result = &models.AnalysisResult{
		Mode:    models.ModePodcastAnalysis,
		Podcast: &models.PodcastAnalysis{Summary: "episode recap"},
	}

	rec := httptest.NewRecorder()
	srv.handleDownload(rec, httptest.NewRequest(http.MethodGet, "/download", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "podcast_summary.txt") {
		t.Errorf("disposition = %q", disposition)
	}
	if rec.Body.String() != "episode recap" {
		t.Errorf("body = %q, want the summary text", rec.Body.String())
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{summarizer.ErrMissingCredential, "No API key available"},
		{ai.ErrAllModelsFailed, "No model could complete"},
		{summarizer.ErrNoStructuredResult, "podcast data"},
		{errors.New("something odd"), "something odd"},
	}

	for _, tt := range tests {
		if got := userMessage(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("userMessage(%v) = %q, want substring %q", tt.err, got, tt.want)
		}
	}
}
