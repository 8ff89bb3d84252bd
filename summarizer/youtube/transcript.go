package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ErrNoTranscript signals that no caption track could be retrieved for
// a video. Callers react by switching to the audio fallback path; this
// is an expected outcome, not a fault.
var ErrNoTranscript = errors.New("no transcript available")

// TranscriptClient fetches a video's caption track from YouTube's
// timedtext endpoint and flattens it into plain text.
type TranscriptClient struct {
	client  *http.Client
	baseURL string
}

func NewTranscriptClient() *TranscriptClient {
	return &TranscriptClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://www.youtube.com",
	}
}

// Fetch returns the transcript for a video ID: every caption segment's
// text, in original order, separated by single spaces. Any failure at
// any step (captions disabled, video missing, network error) collapses
// to ErrNoTranscript.
func (c *TranscriptClient) Fetch(ctx context.Context, videoID string) (string, error) {
	trackURL, err := c.captionTrackURL(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}

	segments, err := c.fetchSegments(ctx, trackURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}

	return strings.Join(segments, " "), nil
}

var captionTracksRe = regexp.MustCompile(`(?s)"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// captionTrackURL scrapes the watch page for the caption track list and
// picks the first track (preferring a manually authored one when both
// manual and auto-generated tracks exist).
func (c *TranscriptClient) captionTrackURL(ctx context.Context, videoID string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return "", err
	}

	match := captionTracksRe.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("no caption tracks on watch page")
	}

	var tracks []captionTrack
	if err := json.Unmarshal(match[1], &tracks); err != nil {
		return "", fmt.Errorf("failed to parse caption track list: %w", err)
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("empty caption track list")
	}

	selected := tracks[0]
	for _, track := range tracks {
		if track.Kind != "asr" {
			selected = track
			break
		}
	}
	if selected.BaseURL == "" {
		return "", fmt.Errorf("caption track has no URL")
	}
	return selected.BaseURL, nil
}

// json3Transcript mirrors the timedtext fmt=json3 payload.
type json3Transcript struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (c *TranscriptClient) fetchSegments(ctx context.Context, trackURL string) ([]string, error) {
	sep := "?"
	if strings.Contains(trackURL, "?") {
		sep = "&"
	}

	body, err := c.get(ctx, trackURL+sep+"fmt=json3")
	if err != nil {
		return nil, err
	}

	var transcript json3Transcript
	if err := json.Unmarshal(body, &transcript); err != nil {
		return nil, fmt.Errorf("failed to parse transcript payload: %w", err)
	}

	var segments []string
	for _, event := range transcript.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(sb.String(), "\n", " "))
		if text != "" {
			segments = append(segments, text)
		}
	}
	return segments, nil
}

func (c *TranscriptClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
