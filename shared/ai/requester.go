package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/config"

	"google.golang.org/genai"
)

// ErrAllModelsFailed signals that every model candidate was tried and
// none produced output.
var ErrAllModelsFailed = errors.New("no model could complete the analysis")

// ErrUploadTimeout signals that an uploaded audio file never left the
// processing state within the configured deadline.
var ErrUploadTimeout = errors.New("audio processing timed out")

// Response carries the raw model output together with the identifier
// of the candidate that produced it. The model name is part of the
// result contract: the UI surfaces it, and its absence means the whole
// analysis failed.
type Response struct {
	Text  string
	Model string
}

// backend is the slice of the Gemini client the requester needs. Tests
// substitute it to simulate per-candidate failures without network.
type backend interface {
	Generate(ctx context.Context, model string, contents []*genai.Content, jsonOutput bool) (string, error)
	UploadFile(ctx context.Context, path string) (*genai.File, error)
	GetFile(ctx context.Context, name string) (*genai.File, error)
}

// Requester sends content plus an instruction to Gemini, walking an
// ordered list of model candidates until one answers. A requester is
// built per analysis run because the credential may be request-scoped.
type Requester struct {
	backend      backend
	candidates   []string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewRequester(ctx context.Context, apiKey string, cfg *config.AIConfig) (*Requester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Requester{
		backend:      &geminiBackend{client: client},
		candidates:   cfg.ModelCandidates,
		pollInterval: cfg.UploadPollInterval(),
		pollTimeout:  cfg.UploadTimeout(),
	}, nil
}

// Analyze sends the payload and instruction to the first candidate that
// answers. Per-candidate errors are absorbed and the next candidate is
// tried; only exhaustion of the whole list is reported. An instruction
// containing the literal "JSON" constrains the response to JSON output.
func (r *Requester) Analyze(ctx context.Context, payload models.ContentPayload, instruction string) (*Response, error) {
	jsonOutput := strings.Contains(instruction, "JSON")

	var contents []*genai.Content
	switch payload.Kind {
	case models.ContentText:
		prompt := fmt.Sprintf("Analyze this transcript: %s\n\n%s", payload.Text, instruction)
		contents = []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
		}
	case models.ContentAudio:
		file, err := r.uploadAndWait(ctx, payload.AudioPath)
		if err != nil {
			return nil, err
		}
		parts := []*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		}
		contents = []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	default:
		return nil, fmt.Errorf("unsupported content kind %q", payload.Kind)
	}

	var failures []string
	for _, model := range r.candidates {
		text, err := r.backend.Generate(ctx, model, contents, jsonOutput)
		if err != nil {
			log.Printf("Model %s failed, trying next candidate: %v", model, err)
			failures = append(failures, fmt.Sprintf("%s: %v", model, err))
			continue
		}
		if text == "" {
			log.Printf("Model %s returned an empty response, trying next candidate", model)
			failures = append(failures, fmt.Sprintf("%s: empty response", model))
			continue
		}
		return &Response{Text: text, Model: model}, nil
	}

	return nil, fmt.Errorf("%w (%s)", ErrAllModelsFailed, strings.Join(failures, "; "))
}

// uploadAndWait pushes the local audio file to the Files API and polls
// until it leaves the processing state. The wait is bounded: a file
// stuck in processing becomes an explicit failure instead of an
// unbounded loop.
func (r *Requester) uploadAndWait(ctx context.Context, path string) (*genai.File, error) {
	file, err := r.backend.UploadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	deadline := time.Now().Add(r.pollTimeout)
	for file.State == genai.FileStateProcessing {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %v", ErrUploadTimeout, r.pollTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.pollInterval):
		}

		file, err = r.backend.GetFile(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check audio processing state: %w", err)
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("audio file processing failed")
	}
	return file, nil
}

// geminiBackend adapts the real genai client to the backend interface.
type geminiBackend struct {
	client *genai.Client
}

func (g *geminiBackend) Generate(ctx context.Context, model string, contents []*genai.Content, jsonOutput bool) (string, error) {
	var genConfig *genai.GenerateContentConfig
	if jsonOutput {
		genConfig = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	result, err := g.client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func (g *geminiBackend) UploadFile(ctx context.Context, path string) (*genai.File, error) {
	return g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType: "audio/mp4",
	})
}

func (g *geminiBackend) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return g.client.Files.Get(ctx, name, nil)
}
