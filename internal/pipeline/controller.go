// Package pipeline ties the track source, announcement generator,
// synthesizer, and player into a single-shot or continuously polled
// loop.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/domain"
)

// ControllerOption configures the Controller.
type ControllerOption func(*Controller)

// WithPollInterval sets the idle sleep between polls in continuous mode.
func WithPollInterval(d time.Duration) ControllerOption {
	return func(c *Controller) { c.interval = d }
}

// Controller owns the pipeline state and drives one iteration at a
// time: poll -> detect change -> generate -> synthesize -> play.
// Everything is synchronous; a new poll cannot begin while the previous
// track's pipeline is still executing.
type Controller struct {
	source    domain.TrackSource
	announcer domain.Announcer
	synth     domain.Synthesizer
	player    domain.Player
	interval  time.Duration
	log       *log.Logger

	// last is the identity of the most recently detected track. Owned
	// exclusively by the controller, updated on detection of a new
	// track, never reset for the process lifetime.
	last domain.Identity
}

// New creates a pipeline controller.
func New(source domain.TrackSource, announcer domain.Announcer, synth domain.Synthesizer, player domain.Player, logger *log.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		source:    source,
		announcer: announcer,
		synth:     synth,
		player:    player,
		interval:  5 * time.Second,
		log:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessOnce runs one pipeline iteration. It returns true only when
// synthesis produced or reused a playable file for a newly detected
// track; an unchanged or undetectable track returns false.
//
// The sequence is not transactional: the track becomes the new "last
// track" as soon as it is detected, so a later synthesis failure is
// NOT retried on the next poll. Deduplication takes precedence over
// completeness.
func (c *Controller) ProcessOnce(ctx context.Context) bool {
	track, err := c.source.Poll(ctx)
	if err != nil {
		c.log.Debug("nothing to announce", "reason", err)
		return false
	}

	if !domain.IsNewTrack(track, c.last) {
		c.log.Debug("track already processed", "title", track.Title, "artist", track.Artist)
		return false
	}

	c.last = track.Identity()
	c.log.Info("new track detected", "title", track.Title, "artist", track.Artist)

	text := c.announcer.Generate(ctx, track)
	c.log.Info("announcement", "text", text)

	path, err := c.synth.Synthesize(ctx, text, track)
	if err != nil {
		c.log.Error("synthesis failed", "err", err)
		return false
	}

	if err := c.player.Play(path); err != nil {
		// The announcement exists on disk; a playback hiccup doesn't
		// undo that.
		c.log.Error("playback failed", "path", path, "err", err)
	}

	return true
}

// RunOnce polls exactly one time and processes the current track if it
// is new.
func (c *Controller) RunOnce(ctx context.Context) {
	c.log.Info("running in single-shot mode")
	if c.ProcessOnce(ctx) {
		c.log.Info("track processed")
	} else {
		c.log.Info("no track to process")
	}
}

// RunContinuous polls until ctx is cancelled, sleeping the poll
// interval between iterations. Each iteration runs under a
// non-cancellable context so an interrupt never aborts an in-flight
// synthesis or playback call; the loop exits at the next idle point.
func (c *Controller) RunContinuous(ctx context.Context) {
	c.log.Info("starting continuous monitoring", "interval", c.interval)

	for {
		c.ProcessOnce(context.WithoutCancel(ctx))

		select {
		case <-ctx.Done():
			c.log.Info("shutting down gracefully")
			return
		case <-time.After(c.interval):
		}
	}
}
