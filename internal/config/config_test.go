package config

import (
	"os"
	"strings"
	"testing"
)

// setBaseEnv sets the minimum environment for a successful Load and
// clears every other recognized variable so ambient shell state can't
// leak into assertions. t.Setenv registers the restore; Unsetenv makes
// the variable truly absent so envDefault values apply.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ELEVENLABS_API_KEY", "el-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	for _, key := range []string{
		"MODE", "RUN_MODE", "LANGUAGE_CODE", "POLL_INTERVAL_SECONDS",
		"PLAYBACK_VOLUME", "NOW_PLAYING_TEXT", "BY_TEXT", "OUTPUT_DIR",
		"CACHE_FILE", "OPENAI_MODEL", "ELEVENLABS_VOICE_ID",
		"TTS_MODEL", "TTS_WIZARD_MODEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Mode != ModeSmart {
		t.Errorf("default mode = %q, want smart", cfg.Mode)
	}
	if cfg.RunMode != RunContinuous {
		t.Errorf("default run mode = %q, want continuous", cfg.RunMode)
	}
	if cfg.LanguageCode != "en" {
		t.Errorf("default language = %q, want en", cfg.LanguageCode)
	}
	if cfg.PollIntervalSeconds != 5 {
		t.Errorf("default poll interval = %d, want 5", cfg.PollIntervalSeconds)
	}
	if cfg.Volume != 1.0 {
		t.Errorf("default volume = %v, want 1.0", cfg.Volume)
	}
	if cfg.NowPlayingText != "Now playing" || cfg.ByText != "by" {
		t.Errorf("default phrases = %q/%q", cfg.NowPlayingText, cfg.ByText)
	}
}

func TestLoadInvalidModeFallsBack(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MODE", "turbo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != DefaultMode {
		t.Errorf("mode = %q, want default %q", cfg.Mode, DefaultMode)
	}
	if cfg.ModeWarning == "" || !strings.Contains(cfg.ModeWarning, "turbo") {
		t.Errorf("expected a mode warning naming the bad value, got %q", cfg.ModeWarning)
	}
}

func TestLoadExplicitModes(t *testing.T) {
	for _, mode := range []string{"basic", "smart", "wizard"} {
		t.Run(mode, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("MODE", mode)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(cfg.Mode) != mode {
				t.Errorf("mode = %q, want %q", cfg.Mode, mode)
			}
			if cfg.ModeWarning != "" {
				t.Errorf("unexpected warning: %q", cfg.ModeWarning)
			}
		})
	}
}

func TestLoadMissingElevenLabsKeyIsFatal(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ELEVENLABS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without ELEVENLABS_API_KEY")
	}
}

func TestLoadMissingOpenAIKey(t *testing.T) {
	// Generative modes require the key; basic does not.
	setBaseEnv(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MODE", "smart")
	if _, err := Load(); err == nil {
		t.Fatal("expected error in smart mode without OPENAI_API_KEY")
	}

	t.Setenv("MODE", "wizard")
	if _, err := Load(); err == nil {
		t.Fatal("expected error in wizard mode without OPENAI_API_KEY")
	}

	t.Setenv("MODE", "basic")
	if _, err := Load(); err != nil {
		t.Fatalf("basic mode should not require OPENAI_API_KEY: %v", err)
	}
}

func TestLoadBoundsBadValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("POLL_INTERVAL_SECONDS", "-3")
	t.Setenv("PLAYBACK_VOLUME", "7.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollIntervalSeconds != 5 {
		t.Errorf("poll interval = %d, want clamped default 5", cfg.PollIntervalSeconds)
	}
	if cfg.Volume != 1.0 {
		t.Errorf("volume = %v, want clamped default 1.0", cfg.Volume)
	}
}

func TestTTSModelFor(t *testing.T) {
	setBaseEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.TTSModelFor(ModeWizard); got != cfg.TTSWizardModel {
		t.Errorf("wizard model = %q, want %q", got, cfg.TTSWizardModel)
	}
	if got := cfg.TTSModelFor(ModeSmart); got != cfg.TTSModel {
		t.Errorf("smart model = %q, want %q", got, cfg.TTSModel)
	}
	if got := cfg.TTSModelFor(ModeBasic); got != cfg.TTSModel {
		t.Errorf("basic model = %q, want %q", got, cfg.TTSModel)
	}
}
