package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/ai"
	"yt-summarizer/shared/config"
	"yt-summarizer/shared/storage"
	"yt-summarizer/summarizer/youtube"
)

var (
	// ErrNoVideoID is a user-input error: the URL is not a recognized
	// video link. The pipeline does not start.
	ErrNoVideoID = errors.New("could not extract a video ID from the URL")

	// ErrMissingCredential is reported before any network call when
	// neither a request-scoped nor a shared API key exists.
	ErrMissingCredential = errors.New("no API key available")
)

// MetadataFetcher resolves display metadata; it never fails, returning
// the sentinel instead.
type MetadataFetcher interface {
	Fetch(ctx context.Context, rawURL, videoID string) models.VideoMetadata
}

// TranscriptFetcher returns caption text or ErrNoTranscript.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// AudioFetcher downloads a local audio file or returns ErrNoAudio.
type AudioFetcher interface {
	Download(ctx context.Context, rawURL string) (string, error)
}

// Analyzer is the slice of the AI requester the pipeline uses.
type Analyzer interface {
	Analyze(ctx context.Context, payload models.ContentPayload, instruction string) (*ai.Response, error)
}

// RequesterFactory builds an analyzer for a resolved credential. A new
// one is built per run because the key may be request-scoped.
type RequesterFactory func(ctx context.Context, apiKey string) (Analyzer, error)

// Pipeline runs the full acquisition and analysis sequence for one
// video. Runs are serialized: a second request waits for the first to
// finish, matching the one-at-a-time session model.
type Pipeline struct {
	metadata     MetadataFetcher
	transcripts  TranscriptFetcher
	audio        AudioFetcher
	store        *storage.AudioStore
	newRequester RequesterFactory
	sharedKey    string

	mu sync.Mutex
}

// New wires the production pipeline from configuration.
func New(ctx context.Context, cfg *config.Config, store *storage.AudioStore) *Pipeline {
	return &Pipeline{
		metadata:    youtube.NewMetadataClient(ctx, &cfg.YouTube),
		transcripts: youtube.NewTranscriptClient(),
		audio:       youtube.NewAudioDownloader(store.Dir()),
		store:       store,
		sharedKey:   cfg.AI.GeminiAPIKey,
		newRequester: func(ctx context.Context, apiKey string) (Analyzer, error) {
			return ai.NewRequester(ctx, apiKey, &cfg.AI)
		},
	}
}

// RunInput is one user-triggered analysis request.
type RunInput struct {
	URL      string
	Mode     models.AnalysisMode
	Language string
	// APIKey is the request-supplied credential; it takes priority
	// over the shared key when present.
	APIKey string
}

// Run executes the pipeline to completion, updating the session as it
// goes. On failure the session keeps whatever was acquired before the
// failing stage so the UI can still show metadata and content state.
func (p *Pipeline) Run(ctx context.Context, session *Session, in RunInput) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	videoID := youtube.ExtractVideoID(in.URL)
	if videoID == "" {
		return ErrNoVideoID
	}

	apiKey := p.resolveKey(in.APIKey)
	if apiKey == "" {
		return ErrMissingCredential
	}

	// Starting a new run invalidates the previous one. The old audio
	// file is deleted before anything new is acquired, so the session
	// never holds two live files.
	session.Reset()
	p.store.Discard()

	session.VideoID = videoID
	session.SourceURL = in.URL
	session.Meta = p.metadata.Fetch(ctx, in.URL, videoID)

	payload, err := p.acquireContent(ctx, in.URL, videoID)
	if err != nil {
		return err
	}
	session.Payload = &payload

	requester, err := p.newRequester(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to set up model client: %w", err)
	}

	instruction := Instruction(in.Mode, in.Language)
	resp, err := requester.Analyze(ctx, payload, instruction)
	if err != nil {
		return err
	}

	result := &models.AnalysisResult{Mode: in.Mode, ModelUsed: resp.Model}
	if in.Mode.Structured() {
		podcast, err := ParsePodcastAnalysis(resp.Text)
		if err != nil {
			// No raw-text fallback here: the structured view has no
			// free-text rendering.
			return err
		}
		result.Podcast = podcast
	} else {
		result.Text = LinkifyTimestamps(resp.Text, videoID)
	}

	session.Result = result
	log.Printf("Analysis complete for %s (mode %s, model %s)", videoID, in.Mode, resp.Model)
	return nil
}

// acquireContent prefers the caption track and falls back to an audio
// download. A missing transcript is routine; a failed audio download is
// terminal for the run.
func (p *Pipeline) acquireContent(ctx context.Context, rawURL, videoID string) (models.ContentPayload, error) {
	text, err := p.transcripts.Fetch(ctx, videoID)
	if err == nil {
		return models.TextPayload(text), nil
	}
	if !errors.Is(err, youtube.ErrNoTranscript) {
		log.Printf("Unexpected transcript error for %s, trying audio fallback: %v", videoID, err)
	} else {
		log.Printf("No transcript for %s, switching to audio mode", videoID)
	}

	path, err := p.audio.Download(ctx, rawURL)
	if err != nil {
		return models.ContentPayload{}, fmt.Errorf("content unavailable: %w", err)
	}
	p.store.SetCurrent(path)
	return models.AudioPayload(path), nil
}

// Transcribe generates a verbatim transcript from the session's
// retained audio file. Only meaningful for audio runs.
func (p *Pipeline) Transcribe(ctx context.Context, session *Session, userKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if session.Payload == nil || session.Payload.Kind != models.ContentAudio {
		return fmt.Errorf("no audio content in session")
	}
	if p.store.Current() == "" {
		return fmt.Errorf("audio file lost, re-run the analysis")
	}

	apiKey := p.resolveKey(userKey)
	if apiKey == "" {
		return ErrMissingCredential
	}

	requester, err := p.newRequester(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to set up model client: %w", err)
	}

	resp, err := requester.Analyze(ctx, *session.Payload, transcribeInstruction)
	if err != nil {
		return err
	}
	session.GeneratedTranscript = resp.Text
	return nil
}

func (p *Pipeline) resolveKey(userKey string) string {
	if userKey != "" {
		return userKey
	}
	return p.sharedKey
}
