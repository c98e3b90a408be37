// Herald is a now-playing announcer.
//
// Polls the local media player, announces track changes out loud.
//
// Usage:
//
//	herald [-verbose] [-quiet] [-once] [-log-file FILE]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/heraldfm/herald/internal/announce"
	"github.com/heraldfm/herald/internal/config"
	"github.com/heraldfm/herald/internal/domain"
	"github.com/heraldfm/herald/internal/llm"
	"github.com/heraldfm/herald/internal/pipeline"
	"github.com/heraldfm/herald/internal/speech"
	"github.com/heraldfm/herald/internal/spotify"
	"github.com/heraldfm/herald/internal/storage"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "herald.log", "file to write logs to (use \"stderr\" to log to console)")
	once := flag.Bool("once", false, "process the current track once and exit (overrides RUN_MODE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *once {
		cfg.RunMode = config.RunOnce
	}

	// Direct logs to a file by default so the terminal stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		err := os.MkdirAll(filepath.Dir(*logFile), 0o755)
		if err == nil {
			var f *os.File
			if f, err = os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				logOut = f
				defer f.Close()
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		}
	}

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	if *quiet {
		level = log.FatalLevel
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	if cfg.ModeWarning != "" {
		logger.Warn(cfg.ModeWarning)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: creating output dir %s: %v\n", cfg.OutputDir, err)
		os.Exit(1)
	}

	// Wire dependencies. The text cache and the LLM client only exist in
	// generative modes; basic announcements never touch either.
	source := spotify.NewSource(logger.WithPrefix("spotify"))

	var completer llm.Completer
	var store domain.AnnouncementStore
	if cfg.Mode.Generative() {
		store = storage.NewFileStore(cfg.CacheFile, logger.WithPrefix("cache"))
		completer = llm.NewClient(cfg.OpenAIAPIKey, logger.WithPrefix("llm"),
			llm.WithModel(cfg.OpenAIModel),
		)
	}
	announcer := announce.New(cfg, completer, store, logger.WithPrefix("announce"))

	ttsClient := speech.NewClient(cfg.ElevenLabsAPIKey, cfg.VoiceID, cfg.LanguageCode, logger.WithPrefix("tts"))
	synth := speech.NewSynthesizer(cfg, ttsClient, logger.WithPrefix("tts"))

	player, err := speech.NewPlayer(cfg.Volume, logger.WithPrefix("player"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: audio player init failed: %v\n", err)
		os.Exit(1)
	}

	controller := pipeline.New(source, announcer, synth, player, logger.WithPrefix("pipeline"),
		pipeline.WithPollInterval(cfg.PollInterval()),
	)

	logger.Info("herald initialized", "mode", cfg.Mode, "lang", cfg.LanguageCode, "run", cfg.RunMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMode == config.RunOnce {
		controller.RunOnce(ctx)
		return
	}
	controller.RunContinuous(ctx)
}
