package youtube

import (
	"context"
	"errors"
	"testing"
)

type fakeRunner struct {
	output []byte
	err    error
	cmds   [][]string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.cmds = append(f.cmds, append([]string{name}, args...))
	return f.output, f.err
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		duration string
		expected int
	}{
		{"PT45S", 45},
		{"PT1M30S", 90},
		{"PT2H15M30S", 8130},
		{"PT3H", 10800},
		{"PT10M", 600},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			if got := parseDurationSeconds(tt.duration); got != tt.expected {
				t.Errorf("parseDurationSeconds(%q) = %d, want %d", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestFetchFromYtDlp(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"title": "A Talk", "duration": 3723.4}`)}
	c := &MetadataClient{runner: runner}

	meta := c.Fetch(context.Background(), "https://youtu.be/abc", "abc")
	if meta.Title != "A Talk" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.DurationSeconds != 3723 {
		t.Errorf("DurationSeconds = %d, want 3723", meta.DurationSeconds)
	}

	if len(runner.cmds) != 1 || runner.cmds[0][0] != "yt-dlp" {
		t.Fatalf("expected one yt-dlp invocation, got %v", runner.cmds)
	}
	for _, arg := range runner.cmds[0] {
		if arg == "--no-download" {
			return
		}
	}
	t.Error("yt-dlp metadata call must skip the media download")
}

func TestFetchNeverFails(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
	}{
		{"Subprocess error", &fakeRunner{err: errors.New("network unreachable")}},
		{"Unparseable output", &fakeRunner{output: []byte("not json")}},
		{"Missing title", &fakeRunner{output: []byte(`{"duration": 10}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &MetadataClient{runner: tt.runner}
			meta := c.Fetch(context.Background(), "https://youtu.be/abc", "abc")
			if meta.Title != "Unknown Title" || meta.DurationSeconds != 0 {
				t.Errorf("expected sentinel metadata, got %+v", meta)
			}
		})
	}
}
