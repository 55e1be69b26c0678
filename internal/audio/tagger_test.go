package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/mp3/mp3test"
)

func writeTrackFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, mp3test.Stream(4), 0644))
	return path
}

func readTag(t *testing.T, path string) *id3v2.Tag {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	t.Cleanup(func() { tag.Close() })
	return tag
}

func TestWriteTags_RoundTrip(t *testing.T) {
	path := writeTrackFile(t, t.TempDir(), "1. Intro.mp3")

	err := NewTagger().WriteTags(path, Metadata{
		Title:       "Intro",
		Artist:      "Some Band",
		Album:       "Night Drive",
		TrackNumber: 1,
	})
	require.NoError(t, err)

	tag := readTag(t, path)
	assert.Equal(t, "Intro", tag.Title())
	assert.Equal(t, "Some Band", tag.Artist())
	assert.Equal(t, "Night Drive", tag.Album())
	assert.Equal(t, "1", tag.GetTextFrame("TRCK").Text)
}

func TestWriteTags_ReplacesValuesKeepsUnrelatedFrames(t *testing.T) {
	path := writeTrackFile(t, t.TempDir(), "1. Old.mp3")

	// Seed the container with prior values plus an unrelated frame.
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetTitle("Old Title")
	tag.SetGenre("Post-Rock")
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())

	err = NewTagger().WriteTags(path, Metadata{
		Title:       "New Title",
		Artist:      "Artist",
		Album:       "Album",
		TrackNumber: 1,
	})
	require.NoError(t, err)

	got := readTag(t, path)
	assert.Equal(t, "New Title", got.Title())
	assert.Equal(t, "Post-Rock", got.Genre(), "unrelated frame must survive retagging")
}

func TestWriteTags_AppendsArtwork(t *testing.T) {
	path := writeTrackFile(t, t.TempDir(), "1. Art.mp3")

	// An existing picture is kept, not replaced.
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/png",
		PictureType: id3v2.PTBackCover,
		Description: "Back",
		Picture:     []byte{1, 2, 3},
	})
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())

	err = NewTagger().WriteTags(path, Metadata{
		Title:       "Art",
		Artist:      "Artist",
		Album:       "Album",
		TrackNumber: 1,
		Artwork:     []byte{4, 5, 6},
		ArtworkMIME: "image/jpeg",
	})
	require.NoError(t, err)

	got := readTag(t, path)
	pics := got.GetFrames(got.CommonID("Attached picture"))
	assert.Len(t, pics, 2)
}

func TestWriteTags_Validation(t *testing.T) {
	tagger := NewTagger()

	err := tagger.WriteTags("irrelevant.mp3", Metadata{Title: "X", TrackNumber: 0})
	require.Error(t, err)

	err = tagger.WriteTags("irrelevant.mp3", Metadata{Title: "", TrackNumber: 1})
	require.Error(t, err)
}

func TestWriteTags_MissingFile(t *testing.T) {
	err := NewTagger().WriteTags(filepath.Join(t.TempDir(), "gone.mp3"), Metadata{
		Title:       "X",
		Artist:      "Y",
		Album:       "Z",
		TrackNumber: 1,
	})

	var twe *TagWriteError
	require.ErrorAs(t, err, &twe)
	assert.Contains(t, twe.Path, "gone.mp3")
}

func TestTagDirectory_NumericOrder(t *testing.T) {
	dir := t.TempDir()
	writeTrackFile(t, dir, "2. B.mp3")
	writeTrackFile(t, dir, "10. A.mp3")
	writeTrackFile(t, dir, "1. C.mp3")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("x"), 0644))

	tracks := make([]*model.Track, 10)
	for i := range tracks {
		tracks[i] = &model.Track{Number: i + 1, Title: string(rune('A' + i)), Start: time.Duration(i) * time.Minute}
	}
	// Only three files on disk; pairing stops at the shorter side.
	album := model.NewAlbum("in.mp3", "Album", "Artist", dir, "", tracks[:3])

	n, err := NewTagger().TagDirectory(dir, album, nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// "2." sorts after "1." and before "10." under numeric ordering.
	assert.Equal(t, "A", readTag(t, filepath.Join(dir, "1. C.mp3")).Title())
	assert.Equal(t, "B", readTag(t, filepath.Join(dir, "2. B.mp3")).Title())
	assert.Equal(t, "C", readTag(t, filepath.Join(dir, "10. A.mp3")).Title())
	assert.Equal(t, "3", readTag(t, filepath.Join(dir, "10. A.mp3")).GetTextFrame("TRCK").Text)
}

func TestTagDirectory_TruncatesOnMismatch(t *testing.T) {
	dir := t.TempDir()
	writeTrackFile(t, dir, "1. One.mp3")
	writeTrackFile(t, dir, "2. Two.mp3")

	album := model.NewAlbum("in.mp3", "Album", "Artist", dir, "", threeTracks())

	n, err := NewTagger().TagDirectory(dir, album, nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "pairing stops at the shorter sequence")
}

func TestTrackNumberPrefix(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"5. Swim.mp3", 5, true},
		{"10. A.mp3", 10, true},
		{"cover.jpg", 0, false},
		{"notrack.mp3", 0, false},
		{". dot.mp3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := trackNumberPrefix(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
