package domain

import "context"

// TrackSource reports what the local media player is currently playing.
// Implementations must return within a short bounded timeout and map
// every flavor of "player not running" / "query failed" to ErrNotPlaying;
// the controller treats them all as "nothing to announce now".
type TrackSource interface {
	Poll(ctx context.Context) (Snapshot, error)
}

// Announcer turns a track snapshot into the text to be spoken.
// Implementations may consult external services and caches; they must
// always return something speakable (generative failures degrade to a
// fixed template, never to silence).
type Announcer interface {
	Generate(ctx context.Context, track Snapshot) string
}

// Synthesizer renders announcement text to a playable audio file and
// returns its path. Implementations reuse an existing file at the
// deterministic path for the track without any external call.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, track Snapshot) (string, error)
}

// Player plays an audio file through the local sound device.
type Player interface {
	Play(path string) error
}

// AnnouncementStore persists generated announcement text across process
// restarts. Load failures yield an empty cache; persist failures are
// swallowed by implementations (the in-memory entry is kept).
type AnnouncementStore interface {
	Get(key string) (string, bool)
	Put(key, text string)
}
