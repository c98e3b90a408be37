// Package config loads the process-wide configuration from the
// environment. The configuration is read once at startup and is
// immutable for the process lifetime.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Mode selects the announcement protocol.
type Mode string

const (
	// ModeBasic builds a deterministic template string, no external calls.
	ModeBasic Mode = "basic"
	// ModeSmart asks the LLM for a simplified flat announcement.
	ModeSmart Mode = "smart"
	// ModeWizard asks the LLM for an announcement with per-segment
	// [read in XX] language directives.
	ModeWizard Mode = "wizard"
)

// Generative reports whether the mode calls the text-generation service.
func (m Mode) Generative() bool {
	return m == ModeSmart || m == ModeWizard
}

// RunMode selects single-shot vs continuous operation.
type RunMode string

const (
	RunOnce       RunMode = "once"
	RunContinuous RunMode = "continuous"
)

// DefaultMode is used when MODE is unset or unrecognized. The announcer
// is generative by default, matching its original behavior.
const DefaultMode = ModeSmart

// Config holds every process tunable. Parsed from the environment via
// caarlos0/env struct tags; validated once by Load.
type Config struct {
	ModeRaw      string `env:"MODE" envDefault:"smart"`
	LanguageCode string `env:"LANGUAGE_CODE" envDefault:"en"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	VoiceID          string `env:"ELEVENLABS_VOICE_ID" envDefault:"EXAVITQu4vr4xnSDxMaL"`
	TTSModel         string `env:"TTS_MODEL" envDefault:"eleven_multilingual_v2"`
	TTSWizardModel   string `env:"TTS_WIZARD_MODEL" envDefault:"eleven_v3"`

	PollIntervalSeconds int     `env:"POLL_INTERVAL_SECONDS" envDefault:"5"`
	OutputDir           string  `env:"OUTPUT_DIR" envDefault:"output"`
	CacheFile           string  `env:"CACHE_FILE" envDefault:"announcements.json"`
	Volume              float64 `env:"PLAYBACK_VOLUME" envDefault:"1.0"`
	RunModeRaw          string  `env:"RUN_MODE" envDefault:"continuous"`

	// Phrase templates for basic-mode and fallback announcements.
	NowPlayingText string `env:"NOW_PLAYING_TEXT" envDefault:"Now playing"`
	ByText         string `env:"BY_TEXT" envDefault:"by"`

	// Resolved by Load from the raw strings above. Untagged, so the env
	// parser leaves them alone.
	Mode    Mode
	RunMode RunMode

	// ModeWarning is set when an unrecognized MODE value was replaced by
	// the default, so main can log it once the logger exists.
	ModeWarning string
}

// PollInterval returns the controller's idle sleep between polls.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// TTSModelFor returns the synthesis model for the given mode. Wizard
// announcements carry bracket directives and need the bracket-capable
// model; the flat-text model chokes on them.
func (c *Config) TTSModelFor(m Mode) string {
	if m == ModeWizard {
		return c.TTSWizardModel
	}
	return c.TTSModel
}

// Load parses the environment into a Config and validates it. A missing
// credential required by the configured mode is the only fatal condition
// in the whole program.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch Mode(cfg.ModeRaw) {
	case ModeBasic, ModeSmart, ModeWizard:
		cfg.Mode = Mode(cfg.ModeRaw)
	default:
		cfg.Mode = DefaultMode
		cfg.ModeWarning = fmt.Sprintf("unrecognized MODE %q, using %q", cfg.ModeRaw, DefaultMode)
	}

	switch RunMode(cfg.RunModeRaw) {
	case RunOnce:
		cfg.RunMode = RunOnce
	default:
		cfg.RunMode = RunContinuous
	}

	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = 5
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		cfg.Volume = 1.0
	}

	if cfg.ElevenLabsAPIKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY is required")
	}
	if cfg.Mode.Generative() && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required in %s mode", cfg.Mode)
	}

	return &cfg, nil
}
