// ABOUTME: Caption source that downloads YouTube subtitles with the yt-dlp command line tool
// ABOUTME: Each call works in its own temp dir, removed afterwards whatever happened

package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"feeds-app-api/core/interfaces"
)

// Defaults
const (
	DefaultBinary      = "yt-dlp"
	DefaultTimeout     = 60 * time.Second
	DefaultOutputLimit = 1 << 20
)

// Config configures the caption source
type Config struct {
	Binary string

	// Languages is the yt-dlp --sub-langs preference, e.g. "en.*,en"
	Languages string

	// Timeout is the wall-clock limit for one yt-dlp run
	Timeout time.Duration

	// OutputLimit caps how much stdout and stderr is kept
	OutputLimit int
}

// runner executes a command, writing its output to w
type runner func(ctx context.Context, name string, args []string, w io.Writer) error

// Source implements interfaces.CaptionSource
type Source struct {
	cfg    Config
	logger interfaces.Logger
	run    runner
}

// New creates a caption source, filling zero config fields with defaults
func New(cfg Config, logger interfaces.Logger) *Source {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Languages == "" {
		cfg.Languages = "en.*,en"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.OutputLimit <= 0 {
		cfg.OutputLimit = DefaultOutputLimit
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Source{cfg: cfg, logger: logger, run: execRun}
}

// Captions implements interfaces.CaptionSource
func (s *Source) Captions(ctx context.Context, videoID string) (string, error) {
	dir, err := os.MkdirTemp("", "captions-"+videoID+"-*")
	if err != nil {
		return "", fmt.Errorf("create caption dir: %w", err)
	}
	defer s.removeAll(dir)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out := newCappedBuffer(s.cfg.OutputLimit)
	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", s.cfg.Languages,
		"--sub-format", "vtt",
		"--no-progress",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
		"https://www.youtube.com/watch?v=" + videoID,
	}

	start := time.Now()
	err = s.run(ctx, s.cfg.Binary, args, out)
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("yt-dlp timed out after %s", s.cfg.Timeout)
	}
	if err != nil {
		return "", fmt.Errorf("yt-dlp: %w: %s", err, strings.TrimSpace(out.String()))
	}

	path, err := firstSubtitle(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}

	s.logger.Debug("Captions downloaded", map[string]interface{}{
		"video_id":    videoID,
		"bytes":       len(data),
		"truncated":   out.Truncated(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return string(data), nil
}

// firstSubtitle returns the first .vtt file in dir in name order, or ErrNoCaptions
func firstSubtitle(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list caption dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".vtt") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", interfaces.ErrNoCaptions
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

func (s *Source) removeAll(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Debug("Caption dir cleanup failed", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
	}
}

func execRun(ctx context.Context, name string, args []string, w io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdout = w
	cmd.Stderr = w
	cmd.WaitDelay = 5 * time.Second
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("exit status %d", exitErr.ExitCode())
		}
		return err
	}
	return nil
}
