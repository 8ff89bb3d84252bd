package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/ai"
	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"
	"yt-summarizer/summarizer"
	"yt-summarizer/summarizer/youtube"
)

// Pipeline is the slice of the summarizer the server drives.
type Pipeline interface {
	Run(ctx context.Context, session *summarizer.Session, in summarizer.RunInput) error
	Transcribe(ctx context.Context, session *summarizer.Session, apiKey string) error
}

// Server renders the dashboard and drives the analysis pipeline. It
// holds the single process-wide session: one payload, one result,
// replaced wholesale by each run.
type Server struct {
	cfg      *config.Config
	pipeline Pipeline
	monitor  *monitoring.Monitor
	tmpl     *template.Template

	mu      sync.Mutex
	session *summarizer.Session
	lastURL string
}

func New(cfg *config.Config, pipeline Pipeline, monitor *monitoring.Monitor) (*Server, error) {
	tmpl, err := template.New("dashboard").
		Funcs(template.FuncMap{"renderText": renderResultText}).
		Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &Server{
		cfg:      cfg,
		pipeline: pipeline,
		monitor:  monitor,
		tmpl:     tmpl,
		session:  &summarizer.Session{},
	}, nil
}

// Start serves the dashboard until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/transcribe", s.handleTranscribe)
	mux.HandleFunc("/download", s.handleDownload)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Dashboard listening on port %d", s.cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dashboard server failed: %w", err)
	}
	return nil
}

// pageData is everything the dashboard template needs for one render.
type pageData struct {
	Modes           []models.AnalysisMode
	Languages       []string
	DefaultLanguage string
	HasSharedKey    bool

	URL          string
	ThumbnailURL string
	Error        string
	Notice       string

	Session *summarizer.Session
	// RatioHostWidth/RatioGuestWidth are bar widths in percent,
	// proportional to the reported values even when they don't sum
	// to 100. The raw numbers are shown as-is next to the bar.
	RatioHostWidth  int
	RatioGuestWidth int
}

func (s *Server) newPageData() *pageData {
	data := &pageData{
		Modes:           models.Modes(),
		Languages:       []string{"English", "Hindi", "Spanish", "French", "German"},
		DefaultLanguage: s.cfg.Server.DefaultLanguage,
		HasSharedKey:    s.cfg.AI.GeminiAPIKey != "",
		URL:             s.lastURL,
		Session:         s.session,
	}
	if s.session.VideoID != "" {
		data.ThumbnailURL = youtube.ThumbnailURL(s.session.VideoID)
	}
	if r := s.session.Result; r != nil && r.Podcast != nil {
		total := r.Podcast.HostPercentage + r.Podcast.GuestPercentage
		if total > 0 {
			data.RatioHostWidth = int(r.Podcast.HostPercentage / total * 100)
			data.RatioGuestWidth = 100 - data.RatioHostWidth
		}
	}
	return data
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	data := s.newPageData()
	s.mu.Unlock()

	s.render(w, data)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	in := summarizer.RunInput{
		URL:      r.FormValue("url"),
		Mode:     models.AnalysisMode(r.FormValue("mode")),
		Language: r.FormValue("language"),
		APIKey:   r.FormValue("api_key"),
	}
	if !in.Mode.Valid() {
		in.Mode = models.ModeGeneralSummary
	}
	if in.Language == "" {
		in.Language = s.cfg.Server.DefaultLanguage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastURL = in.URL

	startTime := time.Now()
	err := s.pipeline.Run(r.Context(), s.session, in)
	duration := time.Since(startTime)

	data := s.newPageData()
	if err != nil {
		s.monitor.RecordFailure(err, duration)
		data.Error = userMessage(err)
	} else {
		s.monitor.RecordSuccess(fmt.Sprintf("%s of %s via %s",
			in.Mode.DisplayName(), s.session.VideoID, s.session.Result.ModelUsed), duration)
	}

	s.render(w, data)
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.newPageData()
	if err := s.pipeline.Transcribe(r.Context(), s.session, r.FormValue("api_key")); err != nil {
		data.Error = userMessage(err)
	} else {
		data.Notice = "Transcript generated from audio."
	}

	s.render(w, data)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	result := s.session.Result
	s.mu.Unlock()

	if result == nil {
		http.Error(w, "no analysis to download", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.Mode.ExportFilename()))
	fmt.Fprint(w, result.ExportText())
}

func (s *Server) render(w http.ResponseWriter, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("Template render error: %v", err)
	}
}

// userMessage maps pipeline errors to the actionable messages the
// dashboard shows; unknown errors pass through as-is.
func userMessage(err error) string {
	switch {
	case errors.Is(err, summarizer.ErrNoVideoID):
		return "That doesn't look like a YouTube video link. Paste a watch, youtu.be, embed or /v/ URL."
	case errors.Is(err, summarizer.ErrMissingCredential):
		return "No API key available. Enter one above or configure a shared key."
	case errors.Is(err, youtube.ErrNoAudio):
		return "Content unavailable: this video has no transcript and the audio could not be fetched."
	case errors.Is(err, ai.ErrAllModelsFailed):
		return "No model could complete the analysis. Try again later."
	case errors.Is(err, summarizer.ErrNoStructuredResult):
		return "Failed to parse podcast data from the model's response."
	}
	return err.Error()
}
