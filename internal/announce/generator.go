// Package announce turns a track snapshot into the text to be spoken.
// Three protocols: a deterministic template (basic) and two generative
// ones (smart, wizard) backed by the text-generation service and a
// persistent announcement cache.
package announce

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/config"
	"github.com/heraldfm/herald/internal/domain"
	"github.com/heraldfm/herald/internal/llm"
	"github.com/heraldfm/herald/internal/storage"
)

// Compile-time interface check.
var _ domain.Announcer = (*Generator)(nil)

// Generator produces announcement text for a track according to the
// configured mode. It never fails: generative errors degrade to the
// basic-style template instead of silence.
type Generator struct {
	mode       config.Mode
	lang       string
	nowPlaying string
	by         string
	completer  llm.Completer            // nil in basic mode
	store      domain.AnnouncementStore // nil in basic mode
	log        *log.Logger
}

// New creates a generator. completer and store may be nil when the mode
// is basic; basic announcements never touch the cache or the network.
func New(cfg *config.Config, completer llm.Completer, store domain.AnnouncementStore, logger *log.Logger) *Generator {
	return &Generator{
		mode:       cfg.Mode,
		lang:       cfg.LanguageCode,
		nowPlaying: cfg.NowPlayingText,
		by:         cfg.ByText,
		completer:  completer,
		store:      store,
		log:        logger,
	}
}

// Generate returns the announcement for track.
//
// Generative modes consult the cache first: a hit is returned verbatim
// with zero collaborator calls and no re-persist. A miss invokes the
// text-generation service once; success is cached (write-through) before
// returning, failure falls back to the basic template and is never
// cached, so the next occurrence of the key retries generation.
func (g *Generator) Generate(ctx context.Context, track domain.Snapshot) string {
	if !g.mode.Generative() {
		return g.basicLine(track)
	}

	key := storage.Key(track.Title, track.Artist, g.lang, string(g.mode))
	if text, ok := g.store.Get(key); ok {
		g.log.Info("announcement cache hit", "title", track.Title, "artist", track.Artist)
		return text
	}
	g.log.Info("announcement cache miss", "title", track.Title, "artist", track.Artist, "mode", g.mode)

	text, err := g.completer.Complete(ctx, g.systemPrompt(), userPrompt(track))
	if err != nil {
		g.log.Error("generation failed, using fallback template", "err", err)
		return g.basicLine(track)
	}

	g.store.Put(key, text)
	g.log.Info("announcement generated", "text", text)
	return text
}

// basicLine is the deterministic template shared by basic mode and the
// generative-failure fallback: "<now playing>: <title> - <by> - <artist>".
func (g *Generator) basicLine(track domain.Snapshot) string {
	return fmt.Sprintf("%s: %s - %s - %s", g.nowPlaying, track.Title, g.by, track.Artist)
}

func (g *Generator) systemPrompt() string {
	if g.mode == config.ModeWizard {
		return wizardPrompt(g.lang)
	}
	return smartPrompt(g.lang)
}

func userPrompt(track domain.Snapshot) string {
	return fmt.Sprintf("%s by %s", track.Title, track.Artist)
}
