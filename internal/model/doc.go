// Package model defines the core data structures shared by the splitter
// pipeline.
//
// # Track
//
// Track represents one song to extract from the source recording, with a
// 1-based number, a title, and a half-open [Start, End) interval. The
// final track of an album has End set to the Unbounded sentinel, meaning
// it runs to the end of the source audio.
//
// # Album
//
// Album represents the full splitting job: the source audio, the ordered
// track sequence, the destination directory, and the metadata (album
// name, artist, optional cover image) written onto each output file.
//
//	album := model.NewAlbum("side_a.mp3", "Night Drive", "Some Band", "out", "cover.jpg", tracks)
//	album.TrackPath(tracks[0], ".mp3") // "out/1. Intro.mp3"
package model
