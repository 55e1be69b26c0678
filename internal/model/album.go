package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Album represents one splitting job: a source recording, the ordered
// tracks to cut out of it, and the metadata destined for each output file.
//
// An Album is constructed once from a job file plus a parsed tracklist and
// is read-only for the remainder of the run. It owns its Tracks
// exclusively; tracks have no existence outside an album.
type Album struct {
	// AudioPath is the path to the source audio file (.mp3, .wav or .flac).
	AudioPath string

	// Name is the album name written into each track's tags.
	Name string

	// Artist is the album artist written into each track's tags.
	Artist string

	// OutputDir is the directory the split tracks are written into.
	// It must already exist; the splitter does not create it.
	OutputDir string

	// CoverPath is the path to the front-cover image, or empty when the
	// album has no artwork.
	CoverPath string

	// Tracks are the tracks to extract, in ascending Number order.
	Tracks []*Track
}

// NewAlbum creates an Album over an already-finalized track sequence.
func NewAlbum(audioPath, name, artist, outputDir, coverPath string, tracks []*Track) *Album {
	return &Album{
		AudioPath: audioPath,
		Name:      name,
		Artist:    artist,
		OutputDir: outputDir,
		CoverPath: coverPath,
		Tracks:    tracks,
	}
}

// HasCover reports whether a cover image was configured for the album.
func (a *Album) HasCover() bool {
	return a.CoverPath != ""
}

// TrackFileName computes the output filename for a track:
// "<number>. <title><ext>", with the number unpadded and the title run
// through filename sanitization.
//
// Example:
//
//	album.TrackFileName(&Track{Number: 2, Title: "Verse"}, ".mp3")
//	// "2. Verse.mp3"
func (a *Album) TrackFileName(t *Track, ext string) string {
	return sanitizeFileName(fmt.Sprintf("%d. %s", t.Number, t.Title)) + ext
}

// TrackPath computes the full output path for a track inside OutputDir.
func (a *Album) TrackPath(t *Track, ext string) string {
	return filepath.Join(a.OutputDir, a.TrackFileName(t, ext))
}

// PlaylistPath computes the output path for a playlist file named after
// the album, with the given extension (".m3u", ".pls", ...).
func (a *Album) PlaylistPath(ext string) string {
	return filepath.Join(a.OutputDir, sanitizeFileName(a.Name)+ext)
}

// sanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
