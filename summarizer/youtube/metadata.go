package youtube

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strconv"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/config"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// MetadataClient resolves a video's title and duration. It prefers the
// YouTube Data API when credentials are configured and falls back to a
// yt-dlp subprocess otherwise. Every failure collapses to the sentinel
// metadata: a metadata problem must never abort an analysis run.
type MetadataClient struct {
	service *yt.Service
	runner  CommandRunner
}

func NewMetadataClient(ctx context.Context, cfg *config.YouTubeConfig) *MetadataClient {
	c := &MetadataClient{runner: execRunner{}}

	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		httpClient, err := oauthHTTPClient(ctx, cfg)
		if err != nil {
			log.Printf("YouTube OAuth unavailable, using yt-dlp for metadata: %v", err)
			return c
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	default:
		return c
	}

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		log.Printf("Failed to create YouTube service, using yt-dlp for metadata: %v", err)
		return c
	}
	c.service = service
	return c
}

// Fetch returns the metadata for a video. The returned record is the
// sentinel when neither source can resolve it.
func (c *MetadataClient) Fetch(ctx context.Context, rawURL, videoID string) models.VideoMetadata {
	if c.service != nil {
		if meta, ok := c.fetchFromAPI(ctx, videoID); ok {
			return meta
		}
	}
	if meta, ok := c.fetchFromYtDlp(ctx, rawURL); ok {
		return meta
	}
	return models.SentinelMetadata()
}

func (c *MetadataClient) fetchFromAPI(ctx context.Context, videoID string) (models.VideoMetadata, bool) {
	resp, err := c.service.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("YouTube Data API metadata lookup failed for %s: %v", videoID, err)
		return models.VideoMetadata{}, false
	}
	if len(resp.Items) == 0 {
		log.Printf("YouTube Data API returned no items for %s", videoID)
		return models.VideoMetadata{}, false
	}

	item := resp.Items[0]
	meta := models.VideoMetadata{Title: item.Snippet.Title}
	if item.ContentDetails != nil {
		meta.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
	}
	return meta, true
}

// ytDlpInfo is the subset of `yt-dlp --dump-json` output we care about.
type ytDlpInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

func (c *MetadataClient) fetchFromYtDlp(ctx context.Context, rawURL string) (models.VideoMetadata, bool) {
	output, err := c.runner.Run(ctx, "yt-dlp", "--dump-json", "--no-download", "--quiet", rawURL)
	if err != nil {
		log.Printf("yt-dlp metadata extraction failed: %v", err)
		return models.VideoMetadata{}, false
	}

	var info ytDlpInfo
	if err := json.Unmarshal(output, &info); err != nil {
		log.Printf("Failed to parse yt-dlp metadata output: %v", err)
		return models.VideoMetadata{}, false
	}
	if info.Title == "" {
		return models.VideoMetadata{}, false
	}

	return models.VideoMetadata{
		Title:           info.Title,
		DurationSeconds: int(info.Duration),
	}, true
}

var iso8601Duration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 duration (e.g. "PT2H15M30S")
// into whole seconds. Unparseable input yields 0.
func parseDurationSeconds(duration string) int {
	matches := iso8601Duration.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var total int
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			total += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			total += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			total += seconds
		}
	}
	return total
}
