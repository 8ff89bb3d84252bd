package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID parses a YouTube URL into its canonical video ID.
// Recognized shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/v/<id>
//
// Any other shape, or a URL that cannot be parsed, yields "". Callers
// must treat the empty result as a user-input error, not a fault.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	switch u.Hostname() {
	case "youtu.be":
		return strings.TrimPrefix(u.Path, "/")
	case "www.youtube.com", "youtube.com":
		if u.Path == "/watch" {
			return u.Query().Get("v")
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return firstSegment(rest)
		}
		if rest, ok := strings.CutPrefix(u.Path, "/v/"); ok {
			return firstSegment(rest)
		}
	}
	return ""
}

func firstSegment(path string) string {
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return path
}

// WatchURL rebuilds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL is the default-resolution thumbnail for a video ID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/0.jpg"
}
