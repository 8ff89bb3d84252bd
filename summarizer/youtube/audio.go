package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ErrNoAudio signals that the audio fallback could not produce a local
// file. Unlike a missing transcript there is no further fallback: the
// run is over and the user must be told the content is unavailable.
var ErrNoAudio = errors.New("no audio available")

// AudioDownloader fetches a best-effort audio-only track through the
// external yt-dlp binary. Filenames embed the acquisition time so runs
// never collide with a previous run's file in the same directory.
type AudioDownloader struct {
	dir    string
	runner CommandRunner
	now    func() time.Time
}

func NewAudioDownloader(dir string) *AudioDownloader {
	return &AudioDownloader{
		dir:    dir,
		runner: execRunner{},
		now:    time.Now,
	}
}

// Download fetches the best m4a audio stream for a URL and returns the
// local file path. The target is overwritten if it somehow already
// exists; the timestamped name makes that effectively impossible, but
// yt-dlp is told to tolerate it anyway.
func (d *AudioDownloader) Download(ctx context.Context, rawURL string) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create audio directory: %v", ErrNoAudio, err)
	}

	filename := filepath.Join(d.dir, fmt.Sprintf("audio_%d.m4a", d.now().Unix()))

	_, err := d.runner.Run(ctx, "yt-dlp",
		"-f", "bestaudio[ext=m4a]",
		"-o", filename,
		"--quiet",
		"--force-overwrites",
		rawURL,
	)
	if err != nil {
		log.Printf("yt-dlp audio download failed for %s: %v", rawURL, err)
		return "", fmt.Errorf("%w: %v", ErrNoAudio, err)
	}

	// yt-dlp can exit zero without writing anything (e.g. no matching
	// format); treat a missing or empty file as failure.
	info, err := os.Stat(filename)
	if err != nil || info.Size() == 0 {
		return "", fmt.Errorf("%w: no audio stream written", ErrNoAudio)
	}

	return filename, nil
}
