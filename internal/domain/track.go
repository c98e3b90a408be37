// Package domain holds the core types shared across the announcement
// pipeline: track snapshots, change detection, and the ports the
// pipeline controller is wired against.
package domain

// Snapshot is the (title, artist) pair observed from the media player at
// one poll. It has no identity beyond its field values.
type Snapshot struct {
	Title  string
	Artist string
}

// Identity is the derived track key used for change detection only.
// Cache keys are richer (they include language and mode) and are built
// elsewhere.
type Identity string

// Identity returns the track's change-detection key.
func (s Snapshot) Identity() Identity {
	return Identity(s.Title + "|" + s.Artist)
}

// IsNewTrack reports whether cur differs from the previously processed
// track. Comparison is ordinal string identity: no normalization, no
// fuzzy matching. A track that stops and restarts with the identical
// title/artist while nothing else played in between is deliberately NOT
// new, so a consecutive repeat of the same track is never re-announced.
func IsNewTrack(cur Snapshot, last Identity) bool {
	return cur.Identity() != last
}
