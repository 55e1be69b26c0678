package split

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/audio"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/config"
	ioutils "github.com/nullcipher-labs/mp3-album-splitter/internal/io"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/tracklist"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Runner drives one splitting job from job file to tagged output files:
// build the album, split the source, re-open and tag each output, and
// optionally write a playlist. Every stage runs sequentially; the first
// error aborts the run and anything already written stays on disk.
type Runner struct {
	settings     *config.Settings
	splitter     *audio.Splitter
	tagger       *audio.Tagger
	imageService *ioutils.ImageService

	album *model.Album

	totalTracks int32
	splitDone   int32
	taggedDone  int32

	onProgress func(ProgressEvent)
}

// NewRunner creates a Runner. onProgress may be nil.
func NewRunner(settings *config.Settings, onProgress func(ProgressEvent)) *Runner {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Runner{
		settings:     settings,
		splitter:     audio.NewSplitter(),
		tagger:       audio.NewTagger(),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize loads the job file and the tracklist it names, and builds
// the immutable album for the run.
func (r *Runner) Initialize(jobPath string) error {
	job, err := config.LoadJob(jobPath)
	if err != nil {
		return err
	}

	tracks, err := tracklist.ParseFile(job.TracklistPath)
	if err != nil {
		return err
	}

	r.album = model.NewAlbum(job.AudioPath, job.AlbumName, job.Artist, job.OutputDir, job.CoverPath, tracks)
	atomic.StoreInt32(&r.totalTracks, int32(len(tracks)))

	r.progress(ProgressEvent{
		Message: fmt.Sprintf("Album: %s - %s (%d tracks)", r.album.Artist, r.album.Name, len(tracks)),
		Level:   LevelInfo,
	})
	return nil
}

// Album returns the album built by Initialize, or nil before it.
func (r *Runner) Album() *model.Album {
	return r.album
}

// GetProgress returns the per-track counters for both phases.
func (r *Runner) GetProgress() (split, tagged, total int32) {
	return atomic.LoadInt32(&r.splitDone), atomic.LoadInt32(&r.taggedDone), atomic.LoadInt32(&r.totalTracks)
}

// Run executes the pipeline over the initialized album.
func (r *Runner) Run() error {
	if r.album == nil {
		return fmt.Errorf("runner not initialized")
	}

	artwork, artworkMIME := r.loadCover()

	r.progress(ProgressEvent{Message: fmt.Sprintf("SPLITTING ALBUM: %s...", r.album.Name), Level: LevelInfo})

	_, total, err := r.splitter.Split(r.album, func(done, n int, name string) {
		atomic.StoreInt32(&r.splitDone, int32(done))
		r.progress(ProgressEvent{Message: fmt.Sprintf("%s >> SPLIT (%d/%d)", name, done, n), Level: LevelInfo})
	})
	if err != nil {
		return err
	}

	if r.settings.ModifyTags && r.splitter.OutputExt(r.album.AudioPath) != audio.TaggableExt {
		r.progress(ProgressEvent{Message: "wav outputs are not tagged, skipping tags", Level: LevelInfo})
	} else if r.settings.ModifyTags {
		r.progress(ProgressEvent{Message: "EDITING META DATA...", Level: LevelInfo})

		tagged, err := r.tagger.TagDirectory(r.album.OutputDir, r.album, artwork, artworkMIME, func(done, n int, name string) {
			atomic.StoreInt32(&r.taggedDone, int32(done))
			r.progress(ProgressEvent{Message: fmt.Sprintf("%s >> DONE (%d/%d)", name, done, n), Level: LevelInfo})
		})
		if err != nil {
			return err
		}
		if tagged != len(r.album.Tracks) {
			r.progress(ProgressEvent{
				Message: fmt.Sprintf("tagged %d files for %d tracks (count mismatch)", tagged, len(r.album.Tracks)),
				Level:   LevelWarning,
			})
		}
	}

	if r.settings.CreatePlaylist {
		if err := r.writePlaylist(total); err != nil {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		}
	}

	r.progress(ProgressEvent{Message: fmt.Sprintf("Finished album: %s", r.album.Name), Level: LevelSuccess})
	return nil
}

// loadCover reads and prepares the album cover for tag embedding.
// Cover problems degrade to a warning; the run continues without art.
func (r *Runner) loadCover() (data []byte, mime string) {
	if !r.album.HasCover() {
		return nil, ""
	}

	data, err := os.ReadFile(r.album.CoverPath)
	if err != nil {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Error reading cover: %v", err), Level: LevelWarning})
		return nil, ""
	}
	mime = ioutils.MIMEForImage(r.album.CoverPath)

	if r.settings.CoverArtResize {
		resized, err := r.imageService.ResizeImage(data, r.settings.CoverArtMaxSize, r.settings.CoverArtMaxSize)
		if err != nil {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Error resizing cover: %v", err), Level: LevelWarning})
		} else {
			data, mime = resized, "image/jpeg"
		}
	}
	if r.settings.ConvertCoverArtToJPG && mime != "image/jpeg" {
		converted, err := r.imageService.ConvertToJPEG(data)
		if err != nil {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Error converting cover: %v", err), Level: LevelWarning})
		} else {
			data, mime = converted, "image/jpeg"
		}
	}

	return data, mime
}

// writePlaylist renders the configured playlist format into OutputDir.
func (r *Runner) writePlaylist(total time.Duration) error {
	var format audio.PlaylistFormat
	switch r.settings.PlaylistFormat {
	case "pls":
		format = audio.FormatPLS
	case "wpl":
		format = audio.FormatWPL
	case "zpl":
		format = audio.FormatZPL
	default:
		format = audio.FormatM3U
	}

	creator := audio.NewPlaylistCreator(format, r.settings.M3UExtended)
	content := creator.CreatePlaylist(r.album, r.splitter.OutputExt(r.album.AudioPath), total)

	path := r.album.PlaylistPath(format.Extension())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}

	r.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelVerbose})
	return nil
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
