package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
)

// TaggableExt is the output extension the tagging pass recognizes.
// Only ID3v2-on-MP3 is supported; wav exports are left untagged.
const TaggableExt = ".mp3"

// Metadata is the typed record written onto one output file. It replaces
// any existing values for the title, artist, album and track-number
// frames; unrelated frames already present in the file are kept.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	TrackNumber int

	// Artwork, when non-nil, is embedded as an additional front-cover
	// picture. Existing pictures are kept.
	Artwork     []byte
	ArtworkMIME string
}

// Validate reports whether the record is complete enough to write.
func (m Metadata) Validate() error {
	if m.TrackNumber < 1 {
		return fmt.Errorf("track number %d is not positive", m.TrackNumber)
	}
	if m.Title == "" {
		return fmt.Errorf("track %d has an empty title", m.TrackNumber)
	}
	return nil
}

// TagWriteError indicates a tag container could not be opened or saved.
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("writing tags to %q: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error { return e.Err }

// Tagger writes ID3v2 tags onto split output files.
//
// Example:
//
//	tagger := audio.NewTagger()
//	err := tagger.WriteTags("out/1. Intro.mp3", audio.Metadata{
//		Title:       "Intro",
//		Artist:      "Some Band",
//		Album:       "Night Drive",
//		TrackNumber: 1,
//	})
type Tagger struct{}

// NewTagger creates a Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// WriteTags opens the file's ID3v2 container (creating one if the file
// has none), replaces the title, artist, album and track-number frames,
// embeds artwork when supplied, and saves. Failures to open or save the
// container surface as a *TagWriteError.
func (t *Tagger) WriteTags(path string, meta Metadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	defer tag.Close()

	tag.SetTitle(meta.Title)
	tag.SetArtist(meta.Artist)
	tag.SetAlbum(meta.Album)
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(meta.TrackNumber))

	if meta.Artwork != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    meta.ArtworkMIME,
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     meta.Artwork,
		})
	}

	if err := tag.Save(); err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	return nil
}

// TagDirectory tags the already-split files in dir against the album's
// track sequence.
//
// Files are filtered to the taggable extension, sorted by the leading
// track-number prefix of their filename (numerically, so "9." sorts
// before "10."), and paired positionally with album.Tracks in that
// order. Pairing stops at the shorter of the two sequences; a count
// mismatch is the caller's to report. The track number written is the
// 1-based pairing position.
//
// Returns the number of files tagged.
func (t *Tagger) TagDirectory(dir string, album *model.Album, artwork []byte, artworkMIME string, onTrack ProgressFunc) (int, error) {
	files, err := taggableFiles(dir)
	if err != nil {
		return 0, err
	}

	n := len(files)
	if len(album.Tracks) < n {
		n = len(album.Tracks)
	}

	for i := 0; i < n; i++ {
		track := album.Tracks[i]
		meta := Metadata{
			Title:       track.Title,
			Artist:      album.Artist,
			Album:       album.Name,
			TrackNumber: i + 1,
			Artwork:     artwork,
			ArtworkMIME: artworkMIME,
		}

		if err := t.WriteTags(filepath.Join(dir, files[i]), meta); err != nil {
			return i, err
		}
		if onTrack != nil {
			onTrack(i+1, n, files[i])
		}
	}

	return n, nil
}

// taggableFiles lists the files in dir carrying the taggable extension
// and a numeric track prefix, sorted by that prefix.
func taggableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), TaggableExt) {
			continue
		}
		if _, ok := trackNumberPrefix(e.Name()); !ok {
			continue
		}
		files = append(files, e.Name())
	}

	sort.Slice(files, func(i, j int) bool {
		a, _ := trackNumberPrefix(files[i])
		b, _ := trackNumberPrefix(files[j])
		return a < b
	})
	return files, nil
}

// trackNumberPrefix extracts the leading track number from a split
// filename, e.g. "05. Swim.mp3" yields 5.
func trackNumberPrefix(name string) (int, bool) {
	idx := strings.Index(name, ".")
	if idx <= 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:idx])
	if err != nil {
		return 0, false
	}
	return n, true
}
