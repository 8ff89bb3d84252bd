package summarizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	jsonFenceOpen  = regexp.MustCompile("```json\\s*")
	jsonFenceClose = regexp.MustCompile("```")

	// Matches M:SS, MM:SS and H:MM:SS tokens on word boundaries so
	// substrings of longer numeric runs are left alone.
	timestampRe = regexp.MustCompile(`\b(?:\d{1,2}:)?\d{1,2}:\d{2}\b`)
)

// UnwrapJSON strips a fenced "json" code-block marker and any closing
// fence from a model response, then trims surrounding whitespace. It is
// idempotent: already-unwrapped text passes through unchanged. The
// result is not guaranteed to parse; callers must handle that.
func UnwrapJSON(text string) string {
	text = jsonFenceOpen.ReplaceAllString(text, "")
	text = jsonFenceClose.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// LinkifyTimestamps rewrites bare timestamp tokens in free text into
// markdown links that seek the source video to the matching offset.
// The original timestamp text stays as the link label; all other text
// is preserved verbatim.
func LinkifyTimestamps(text, videoID string) string {
	return timestampRe.ReplaceAllStringFunc(text, func(timestamp string) string {
		seconds := timestampSeconds(timestamp)
		return fmt.Sprintf("[%s](https://youtu.be/%s?t=%d)", timestamp, videoID, seconds)
	})
}

func timestampSeconds(timestamp string) int {
	parts := strings.Split(timestamp, ":")
	values := make([]int, len(parts))
	for i, p := range parts {
		values[i], _ = strconv.Atoi(p)
	}
	if len(values) == 2 {
		return values[0]*60 + values[1]
	}
	return values[0]*3600 + values[1]*60 + values[2]
}
