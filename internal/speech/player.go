package speech

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/heraldfm/herald/internal/domain"
)

// Compile-time interface check.
var _ domain.Player = (*Player)(nil)

// PlayerOption configures the Player.
type PlayerOption func(*Player)

// WithPlayTimeout caps how long a single Play call may block.
func WithPlayTimeout(d time.Duration) PlayerOption {
	return func(p *Player) { p.timeout = d }
}

// Player plays WAV files through the local sound device via oto.
type Player struct {
	ctx     *oto.Context
	volume  float64
	timeout time.Duration
	log     *log.Logger
}

// NewPlayer creates an audio player at the given volume (0..1).
// Initializes the system audio context; returns an error if the audio
// device is unavailable.
func NewPlayer(volume float64, logger *log.Logger, opts ...PlayerOption) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	p := &Player{
		ctx:     ctx,
		volume:  volume,
		timeout: 30 * time.Second,
		log:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	logger.Debug("audio player initialized", "rate", SampleRate, "channels", ChannelCount, "volume", volume)
	return p, nil
}

// Play plays the WAV file at path synchronously. Blocks until playback
// finishes or the play timeout elapses; a timeout stops the audio and
// returns an error.
func (p *Player) Play(path string) error {
	wav, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	pcm, err := extractPCM(wav)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(p.volume)
	player.Play()
	p.log.Debug("playing", "path", path, "pcmBytes", len(pcm))

	deadline := time.Now().Add(p.timeout)
	for player.IsPlaying() {
		if time.Now().After(deadline) {
			player.Pause()
			player.Close()
			return fmt.Errorf("playback of %s exceeded %s", path, p.timeout)
		}
		time.Sleep(10 * time.Millisecond)
	}

	return player.Close()
}
