package youtube

import (
	"context"
	"os/exec"
)

// CommandRunner abstracts subprocess execution so tests can stand in
// for the external yt-dlp binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
