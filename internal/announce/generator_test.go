package announce

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/config"
	"github.com/heraldfm/herald/internal/domain"
	"github.com/heraldfm/herald/internal/storage"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(mode config.Mode) *config.Config {
	return &config.Config{
		Mode:           mode,
		LanguageCode:   "en",
		NowPlayingText: "Now playing",
		ByText:         "by",
	}
}

// fakeCompleter records calls and plays back a canned reply or error.
type fakeCompleter struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.reply, f.err
}

// fakeStore is an in-memory AnnouncementStore with a put counter.
type fakeStore struct {
	entries  map[string]string
	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (f *fakeStore) Get(key string) (string, bool) {
	text, ok := f.entries[key]
	return text, ok
}

func (f *fakeStore) Put(key, text string) {
	f.putCalls++
	f.entries[key] = text
}

func TestBasicModeDeterministic(t *testing.T) {
	completer := &fakeCompleter{}
	store := newFakeStore()
	gen := New(testConfig(config.ModeBasic), completer, store, testLogger())

	track := domain.Snapshot{Title: "Song", Artist: "Artist"}

	got := gen.Generate(context.Background(), track)
	if got != "Now playing: Song - by - Artist" {
		t.Fatalf("basic announcement = %q", got)
	}

	// Pure function of the phrase templates: no collaborator calls, no
	// cache interaction at all.
	if gen.Generate(context.Background(), track) != got {
		t.Fatal("basic mode is not deterministic")
	}
	if completer.calls != 0 {
		t.Fatalf("basic mode made %d completion calls", completer.calls)
	}
	if store.putCalls != 0 || len(store.entries) != 0 {
		t.Fatal("basic mode touched the cache")
	}
}

func TestBasicModePhraseOverrides(t *testing.T) {
	cfg := testConfig(config.ModeBasic)
	cfg.NowPlayingText = "Es läuft"
	cfg.ByText = "von"
	gen := New(cfg, nil, nil, testLogger())

	got := gen.Generate(context.Background(), domain.Snapshot{Title: "Lied", Artist: "Wer"})
	if got != "Es läuft: Lied - von - Wer" {
		t.Fatalf("announcement = %q", got)
	}
}

func TestSmartModeCachesAndShortCircuits(t *testing.T) {
	completer := &fakeCompleter{reply: "Now playing: Cello Concerto - by - Antonio Vivaldi"}
	store := newFakeStore()
	gen := New(testConfig(config.ModeSmart), completer, store, testLogger())

	track := domain.Snapshot{
		Title:  "Cello Concerto in E Minor, RV 409: II. Allegro",
		Artist: "Antonio Vivaldi",
	}

	first := gen.Generate(context.Background(), track)
	if first != completer.reply {
		t.Fatalf("first generation = %q", first)
	}
	if completer.calls != 1 {
		t.Fatalf("expected 1 completion call, got %d", completer.calls)
	}
	if store.putCalls != 1 {
		t.Fatalf("expected 1 cache write, got %d", store.putCalls)
	}

	// Second call with identical inputs: same string, zero additional
	// collaborator calls, no re-persist.
	second := gen.Generate(context.Background(), track)
	if second != first {
		t.Fatalf("second generation = %q, want %q", second, first)
	}
	if completer.calls != 1 {
		t.Fatalf("cache hit still called the completer (%d calls)", completer.calls)
	}
	if store.putCalls != 1 {
		t.Fatalf("cache hit re-persisted (%d writes)", store.putCalls)
	}
}

func TestSmartModeIdempotentAcrossRestart(t *testing.T) {
	// A populated persistent store must short-circuit a fresh generator.
	path := filepath.Join(t.TempDir(), "cache.json")
	track := domain.Snapshot{
		Title:  "Cello Concerto in E Minor, RV 409: II. Allegro",
		Artist: "Antonio Vivaldi",
	}

	first := &fakeCompleter{reply: "Now playing: Cello Concerto - by - Antonio Vivaldi"}
	gen := New(testConfig(config.ModeSmart), first, storage.NewFileStore(path, testLogger()), testLogger())
	want := gen.Generate(context.Background(), track)

	second := &fakeCompleter{reply: "something else entirely"}
	gen2 := New(testConfig(config.ModeSmart), second, storage.NewFileStore(path, testLogger()), testLogger())
	got := gen2.Generate(context.Background(), track)

	if got != want {
		t.Fatalf("restarted generator returned %q, want cached %q", got, want)
	}
	if second.calls != 0 {
		t.Fatalf("restarted generator made %d completion calls", second.calls)
	}
}

func TestGenerativeFailureFallsBack(t *testing.T) {
	for _, mode := range []config.Mode{config.ModeSmart, config.ModeWizard} {
		t.Run(string(mode), func(t *testing.T) {
			completer := &fakeCompleter{err: errors.New("service down")}
			store := newFakeStore()
			gen := New(testConfig(mode), completer, store, testLogger())

			got := gen.Generate(context.Background(), domain.Snapshot{Title: "Song", Artist: "Artist"})
			if got != "Now playing: Song - by - Artist" {
				t.Fatalf("fallback = %q", got)
			}

			// The fallback is never cached, so the next occurrence of
			// the key retries generation.
			if store.putCalls != 0 {
				t.Fatalf("fallback was cached (%d writes)", store.putCalls)
			}

			gen.Generate(context.Background(), domain.Snapshot{Title: "Song", Artist: "Artist"})
			if completer.calls != 2 {
				t.Fatalf("expected a retry after fallback, got %d calls", completer.calls)
			}
		})
	}
}

func TestModePromptSelection(t *testing.T) {
	track := domain.Snapshot{Title: "La donna è mobile", Artist: "Luciano Pavarotti"}

	smart := &fakeCompleter{reply: "x"}
	New(testConfig(config.ModeSmart), smart, newFakeStore(), testLogger()).
		Generate(context.Background(), track)
	if strings.Contains(smart.lastSystem, "[read in") {
		t.Fatal("smart prompt must not ask for bracket directives")
	}
	if smart.lastUser != "La donna è mobile by Luciano Pavarotti" {
		t.Fatalf("user prompt = %q", smart.lastUser)
	}

	wizard := &fakeCompleter{reply: "x"}
	New(testConfig(config.ModeWizard), wizard, newFakeStore(), testLogger()).
		Generate(context.Background(), track)
	if !strings.Contains(wizard.lastSystem, "[read in") {
		t.Fatal("wizard prompt must ask for bracket directives")
	}
	if !strings.Contains(wizard.lastSystem, `"en"`) {
		t.Fatal("wizard prompt must name the base language")
	}
}

func TestModesCacheUnderDistinctKeys(t *testing.T) {
	store := newFakeStore()
	track := domain.Snapshot{Title: "Song", Artist: "Artist"}

	New(testConfig(config.ModeSmart), &fakeCompleter{reply: "flat"}, store, testLogger()).
		Generate(context.Background(), track)
	New(testConfig(config.ModeWizard), &fakeCompleter{reply: "tagged"}, store, testLogger()).
		Generate(context.Background(), track)

	if len(store.entries) != 2 {
		t.Fatalf("expected 2 cache entries, got %d: %v", len(store.entries), store.entries)
	}
}
