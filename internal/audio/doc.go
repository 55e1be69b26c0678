// Package audio slices the source recording into per-track files and
// writes metadata onto the results.
//
// # Splitting
//
// The Splitter reads the source once and emits one output file per
// track interval:
//
//	splitter := audio.NewSplitter()
//	paths, total, err := splitter.Split(album, func(done, n int, name string) {
//		fmt.Printf("%s >> SPLIT (%d/%d)\n", name, done, n)
//	})
//
// MP3 sources are cut on MPEG frame boundaries and stream-copied, so no
// audio is decoded or re-encoded. WAV and FLAC sources are decoded with
// beep and exported as WAV.
//
// # Tagging
//
// The Tagger writes ID3v2 title, artist, album and track-number frames,
// plus optional front-cover artwork, onto the split files. Tagging runs
// as a separate pass that re-opens each output from disk, pairing files
// with tracks by the numeric track prefix in their filename.
//
// # Playlists
//
// PlaylistCreator optionally renders an M3U, PLS, WPL or ZPL playlist
// over the emitted filenames.
package audio
