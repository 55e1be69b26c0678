package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/wav"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/mp3"
)

// ProgressFunc is called after each per-track step with the number of
// tracks done so far, the total, and the output filename just handled.
type ProgressFunc func(done, total int, filename string)

// Splitter cuts a source recording into one output file per track.
//
// The source format decides the slicing strategy:
//   - .mp3 sources are sliced on MPEG frame boundaries and stream-copied,
//     so the output is bit-identical audio with no re-encode.
//   - .wav and .flac sources are decoded once into memory with beep and
//     each track is exported as a .wav file.
//
// The output directory must already exist; Split does not create it.
// The first failing track aborts the run, leaving earlier outputs on disk.
type Splitter struct{}

// NewSplitter creates a Splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// OutputExt returns the extension of the files Split will emit for the
// given source path (".mp3" for mp3 sources, ".wav" otherwise).
func (s *Splitter) OutputExt(audioPath string) string {
	if strings.EqualFold(filepath.Ext(audioPath), ".mp3") {
		return ".mp3"
	}
	return ".wav"
}

// Split reads the album's source audio once and writes one file per
// track into album.OutputDir, in ascending track order. Every track
// except the last covers [Start, End); the last covers [Start, end of
// source). It returns the emitted paths and the total source duration.
//
// An album with no tracks is rejected: there is nothing to slice.
func (s *Splitter) Split(album *model.Album, onTrack ProgressFunc) (paths []string, total time.Duration, err error) {
	if len(album.Tracks) == 0 {
		return nil, 0, fmt.Errorf("album %q has no tracks", album.Name)
	}

	switch ext := strings.ToLower(filepath.Ext(album.AudioPath)); ext {
	case ".mp3":
		return s.splitMPEG(album, onTrack)
	case ".wav", ".flac":
		return s.splitPCM(album, ext, onTrack)
	default:
		return nil, 0, fmt.Errorf("unsupported source format %q", ext)
	}
}

// splitMPEG slices an mp3 source by frame stream copy.
func (s *Splitter) splitMPEG(album *model.Album, onTrack ProgressFunc) ([]string, time.Duration, error) {
	data, err := os.ReadFile(album.AudioPath)
	if err != nil {
		return nil, 0, fmt.Errorf("reading source audio: %w", err)
	}

	stream, err := mp3.Parse(data)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing %s: %w", album.AudioPath, err)
	}

	var paths []string
	for i, track := range album.Tracks {
		end := time.Duration(-1)
		if track.Bounded() {
			end = track.End
		}

		out := album.TrackPath(track, ".mp3")
		if err := os.WriteFile(out, stream.Slice(track.Start, end), 0644); err != nil {
			return nil, 0, fmt.Errorf("exporting %q: %w", out, err)
		}

		paths = append(paths, out)
		if onTrack != nil {
			onTrack(i+1, len(album.Tracks), filepath.Base(out))
		}
	}

	return paths, stream.Duration(), nil
}

// splitPCM decodes a wav or flac source into a beep buffer and exports
// each track as wav.
func (s *Splitter) splitPCM(album *model.Album, srcExt string, onTrack ProgressFunc) ([]string, time.Duration, error) {
	f, err := os.Open(album.AudioPath)
	if err != nil {
		return nil, 0, fmt.Errorf("opening source audio: %w", err)
	}
	defer f.Close()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	if srcExt == ".flac" {
		streamer, format, err = flac.Decode(f)
	} else {
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", album.AudioPath, err)
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	streamer.Close()

	var paths []string
	for i, track := range album.Tracks {
		from := clampSample(format.SampleRate.N(track.Start), buffer.Len())
		to := buffer.Len()
		if track.Bounded() {
			to = clampSample(format.SampleRate.N(track.End), buffer.Len())
		}

		out := album.TrackPath(track, ".wav")
		if err := s.exportWAV(out, buffer, format, from, to); err != nil {
			return nil, 0, err
		}

		paths = append(paths, out)
		if onTrack != nil {
			onTrack(i+1, len(album.Tracks), filepath.Base(out))
		}
	}

	return paths, format.SampleRate.D(buffer.Len()), nil
}

func (s *Splitter) exportWAV(path string, buffer *beep.Buffer, format beep.Format, from, to int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exporting %q: %w", path, err)
	}

	if err := wav.Encode(f, buffer.Streamer(from, to), format); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}

func clampSample(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
