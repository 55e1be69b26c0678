package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/mp3"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/mp3/mp3test"
)

func threeTracks() []*model.Track {
	return []*model.Track{
		{Number: 1, Title: "Intro", Start: 0, End: 30 * time.Second},
		{Number: 2, Title: "Verse", Start: 30 * time.Second, End: 75 * time.Second},
		{Number: 3, Title: "Chorus", Start: 75 * time.Second, End: model.Unbounded},
	}
}

func writeWAVSource(t *testing.T, path string, d time.Duration) beep.Format {
	t.Helper()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	buffer := beep.NewBuffer(format)
	buffer.Append(beep.Silence(format.SampleRate.N(d)))

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, buffer.Streamer(0, buffer.Len()), format))
	require.NoError(t, f.Close())

	return format
}

func wavDuration(t *testing.T, path string) time.Duration {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	require.NoError(t, err)
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len())
}

func TestSplit_WAVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "side_a.wav")
	writeWAVSource(t, src, 90*time.Second)

	album := model.NewAlbum(src, "Album", "Artist", dir, "", threeTracks())

	var progress []string
	paths, total, err := NewSplitter().Split(album, func(done, n int, name string) {
		progress = append(progress, name)
	})
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, total)
	require.Len(t, paths, 3)
	assert.Equal(t, "1. Intro.wav", filepath.Base(paths[0]))
	assert.Equal(t, "2. Verse.wav", filepath.Base(paths[1]))
	assert.Equal(t, "3. Chorus.wav", filepath.Base(paths[2]))
	assert.Len(t, progress, 3)

	// Slice durations reproduce the source exactly.
	var sum time.Duration
	for _, p := range paths {
		sum += wavDuration(t, p)
	}
	assert.Equal(t, 90*time.Second, sum)

	assert.Equal(t, 30*time.Second, wavDuration(t, paths[0]))
	assert.Equal(t, 45*time.Second, wavDuration(t, paths[1]))
	assert.Equal(t, 15*time.Second, wavDuration(t, paths[2]))
}

func TestSplit_MP3FrameCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "side_a.mp3")

	frames := mp3test.FramesFor(90 * time.Second)
	require.NoError(t, os.WriteFile(src, mp3test.Stream(frames), 0644))

	album := model.NewAlbum(src, "Album", "Artist", dir, "", threeTracks())

	paths, total, err := NewSplitter().Split(album, nil)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, ".mp3", filepath.Ext(paths[0]))

	var sum time.Duration
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		stream, err := mp3.Parse(data)
		require.NoError(t, err)
		sum += stream.Duration()
	}
	assert.Equal(t, total, sum, "slice durations must sum to the source duration")
}

func TestSplit_SingleTrack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "whole.wav")
	writeWAVSource(t, src, 10*time.Second)

	album := model.NewAlbum(src, "Album", "Artist", dir, "", []*model.Track{
		{Number: 1, Title: "Whole Side", Start: 0, End: model.Unbounded},
	})

	paths, _, err := NewSplitter().Split(album, nil)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 10*time.Second, wavDuration(t, paths[0]))
}

func TestSplit_NoTracks(t *testing.T) {
	album := model.NewAlbum("in.wav", "Album", "Artist", t.TempDir(), "", nil)

	_, _, err := NewSplitter().Split(album, nil)
	require.Error(t, err)
}

func TestSplit_UnsupportedFormat(t *testing.T) {
	album := model.NewAlbum("in.ogg", "Album", "Artist", t.TempDir(), "", threeTracks())

	_, _, err := NewSplitter().Split(album, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestSplit_MissingSource(t *testing.T) {
	album := model.NewAlbum(filepath.Join(t.TempDir(), "gone.mp3"), "Album", "Artist", t.TempDir(), "", threeTracks())

	_, _, err := NewSplitter().Split(album, nil)
	require.Error(t, err)
}

func TestOutputExt(t *testing.T) {
	s := NewSplitter()
	assert.Equal(t, ".mp3", s.OutputExt("x/y/side.MP3"))
	assert.Equal(t, ".wav", s.OutputExt("side.wav"))
	assert.Equal(t, ".wav", s.OutputExt("side.flac"))
}
