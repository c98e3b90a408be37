// Package spotify queries the local Spotify client for the currently
// playing track via AppleScript (macOS only).
package spotify

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/domain"
)

// appleScript asks the running Spotify app for the current track. The
// output is "name|artist"; an empty result means Spotify isn't running.
const appleScript = `
tell application "Spotify"
	if it is running then
		set trackName to name of current track
		set trackArtist to artist of current track
		return trackName & "|" & trackArtist
	end if
end tell
`

// Compile-time interface check.
var _ domain.TrackSource = (*Source)(nil)

// SourceOption configures the Source.
type SourceOption func(*Source)

// WithTimeout sets the per-poll query timeout. The adapter never blocks
// longer than this; the controller's poll loop provides the retry cadence.
func WithTimeout(d time.Duration) SourceOption {
	return func(s *Source) { s.timeout = d }
}

// WithBinary overrides the osascript binary path. Used in tests.
func WithBinary(bin string) SourceOption {
	return func(s *Source) { s.bin = bin }
}

// Source polls Spotify through an osascript subprocess.
type Source struct {
	bin     string
	timeout time.Duration
	log     *log.Logger
}

// NewSource creates a Spotify track source.
func NewSource(logger *log.Logger, opts ...SourceOption) *Source {
	s := &Source{
		bin:     "osascript",
		timeout: 2 * time.Second,
		log:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := exec.LookPath(s.bin); err != nil {
		logger.Warn("osascript not found in PATH, polling will fail", "bin", s.bin, "err", err)
	}

	return s
}

// Poll returns the current track, or domain.ErrNotPlaying when Spotify
// is not running, nothing is playing, or the query fails or times out.
// All failure flavors collapse into ErrNotPlaying; the caller handles
// them all the same way.
func (s *Source) Poll(ctx context.Context) (domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, s.bin, "-e", appleScript).Output()
	if err != nil {
		if ctx.Err() != nil {
			s.log.Debug("spotify query timed out")
		} else {
			s.log.Debug("spotify query failed", "err", err)
		}
		return domain.Snapshot{}, domain.ErrNotPlaying
	}

	return ParseOutput(string(out))
}

// ParseOutput converts the raw "name|artist" script output into a
// snapshot. Empty output or output without the separator means nothing
// is playing.
func ParseOutput(raw string) (domain.Snapshot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Snapshot{}, domain.ErrNotPlaying
	}

	title, artist, ok := strings.Cut(raw, "|")
	if !ok {
		return domain.Snapshot{}, domain.ErrNotPlaying
	}

	return domain.Snapshot{
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
	}, nil
}
