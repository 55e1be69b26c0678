// Package tracklist parses the human-authored tracklist text format into
// ordered track intervals.
//
// Each non-empty line names one track:
//
//	00:00 Intro
//	00:30 Verse
//	01:15 Chorus (live)
//
// The timestamp is "mm:ss" or "hh:mm:ss" and is separated from the title
// by a single space; the title runs to the end of the line. End times are
// derived in a second pass: each track ends where its successor starts,
// and the last track runs to the end of the source audio.
package tracklist
