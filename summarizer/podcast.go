package summarizer

import (
	"encoding/json"
	"errors"
	"fmt"

	"yt-summarizer/internal/models"
)

// ErrNoStructuredResult signals that a podcast-mode response could not
// be parsed into a structured record. Unlike free-text modes there is
// no raw-text fallback for this path: the structured view has no
// free-text rendering.
var ErrNoStructuredResult = errors.New("structured data could not be extracted")

// podcastResponse mirrors the JSON shape the podcast prompt demands.
type podcastResponse struct {
	GuestInfo struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	} `json:"guest_info"`
	Questions    []string `json:"questions"`
	TalkingRatio struct {
		HostPercentage  float64 `json:"host_percentage"`
		GuestPercentage float64 `json:"guest_percentage"`
	} `json:"talking_ratio"`
	Controversy []string `json:"controversy"`
	Summary     string   `json:"summary"`
}

// ParsePodcastAnalysis unwraps a model response and decodes it into a
// PodcastAnalysis record. The talk-ratio percentages are kept exactly
// as returned; they are not validated or renormalized.
func ParsePodcastAnalysis(raw string) (*models.PodcastAnalysis, error) {
	clean := UnwrapJSON(raw)

	var resp podcastResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStructuredResult, err)
	}

	return &models.PodcastAnalysis{
		GuestName:       resp.GuestInfo.Name,
		GuestBio:        resp.GuestInfo.Bio,
		Questions:       resp.Questions,
		HostPercentage:  resp.TalkingRatio.HostPercentage,
		GuestPercentage: resp.TalkingRatio.GuestPercentage,
		Controversies:   resp.Controversy,
		Summary:         resp.Summary,
	}, nil
}
