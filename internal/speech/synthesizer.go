package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/config"
	"github.com/heraldfm/herald/internal/domain"
)

// TTSClient is the synthesis surface the Synthesizer depends on.
// Satisfied by *Client and by fakes in tests.
type TTSClient interface {
	Synthesize(ctx context.Context, text, modelID string) ([]byte, error)
}

// Compile-time interface check.
var _ domain.Synthesizer = (*Synthesizer)(nil)

// Synthesizer renders announcement text to a WAV file under outputDir.
//
// Filenames are derived from (mode, language, artist, title), so a file
// already on disk means this exact announcement was synthesized before
// and is reused without any network call. This file layer is
// independent of the text cache: it survives cache-file deletion or
// corruption, and its key deliberately excludes the announcement text.
type Synthesizer struct {
	client    TTSClient
	outputDir string
	mode      config.Mode
	lang      string
	model     string
	log       *log.Logger
}

// NewSynthesizer creates a synthesizer bound to the configured mode,
// language, and synthesis model.
func NewSynthesizer(cfg *config.Config, client TTSClient, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		client:    client,
		outputDir: cfg.OutputDir,
		mode:      cfg.Mode,
		lang:      cfg.LanguageCode,
		model:     cfg.TTSModelFor(cfg.Mode),
		log:       logger,
	}
}

// Synthesize returns the path of a playable file for the announcement,
// synthesizing it only when no file exists at the deterministic path.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, track domain.Snapshot) (string, error) {
	path := s.OutputPath(track)

	if _, err := os.Stat(path); err == nil {
		s.log.Info("audio file cache hit", "path", path)
		return path, nil
	}

	audio, err := s.client.Synthesize(ctx, text, s.model)
	if err != nil {
		return "", fmt.Errorf("synthesizing %q: %w", text, err)
	}

	if err := os.WriteFile(path, wrapWAV(audio), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	s.log.Info("audio saved", "path", path, "bytes", len(audio))
	return path, nil
}

// OutputPath returns the deterministic file path for the track:
// <outputDir>/<mode>_<lang>_<artist>_<title>.wav with both names
// sanitized.
func (s *Synthesizer) OutputPath(track domain.Snapshot) string {
	name := fmt.Sprintf("%s_%s_%s_%s.wav", s.mode, s.lang, Sanitize(track.Artist), Sanitize(track.Title))
	return filepath.Join(s.outputDir, name)
}

// Sanitize makes a string safe for use in a filename: everything
// outside [A-Za-z0-9_- ] is stripped, whitespace runs collapse to a
// single underscore, and leading/trailing underscores are trimmed.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == ' ':
			b.WriteRune(r)
		}
	}
	collapsed := strings.Join(strings.Fields(b.String()), "_")
	return strings.Trim(collapsed, "_")
}
