package model

import (
	"fmt"
	"time"
)

// Unbounded is the sentinel end time meaning "extends to the end of the
// source audio". Only the last track of a finalized album carries it.
const Unbounded time.Duration = -1

// Track represents a single song to be cut out of the source audio.
//
// A track is defined by its 1-based position in the album, a free-text
// title, and a half-open time interval [Start, End) into the source
// recording. Tracks are built by the tracklist parser with End left
// Unbounded; a finalization pass then copies each successor's Start into
// the predecessor's End. The last track always keeps Unbounded.
//
// Example:
//
//	track := &model.Track{Number: 3, Title: "Red Sky", Start: 235 * time.Second}
//	track.Bounded() // false until finalization fills End
type Track struct {
	// Number is the track number within the album (1-indexed).
	Number int

	// Title is the track title, used for tagging and file naming.
	Title string

	// Start is the offset into the source audio where the track begins.
	Start time.Duration

	// End is the exclusive offset where the track ends, or Unbounded
	// for the final track.
	End time.Duration
}

// Bounded reports whether the track has a defined end time.
// The last track of an album is never bounded.
func (t *Track) Bounded() bool {
	return t.End >= 0
}

// String renders the track the way it appears in output filenames,
// e.g. "3. Red Sky".
func (t *Track) String() string {
	return fmt.Sprintf("%d. %s", t.Number, t.Title)
}
