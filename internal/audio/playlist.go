package audio

import (
	"fmt"
	"strings"
	"time"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates a playlist over the split output files.
//
// Entries reference the emitted filenames, so the playlist is written
// into the output directory next to the tracks. Durations derive from
// the track intervals; the last (unbounded) track's duration is the
// total source duration minus its start.
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // for M3U: include EXTINF lines
}

// NewPlaylistCreator creates a PlaylistCreator. The extended flag only
// affects the M3U format.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{format: format, extended: extended}
}

// CreatePlaylist renders playlist content for an album whose tracks were
// exported with the given extension and whose source ran for total.
func (p *PlaylistCreator) CreatePlaylist(album *model.Album, ext string, total time.Duration) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(album, ext, total)
	case FormatWPL:
		return p.createWPL(album, ext)
	case FormatZPL:
		return p.createZPL(album, ext, total)
	default:
		return p.createM3U(album, ext, total)
	}
}

// trackDuration resolves a track's play time against the source total.
func trackDuration(t *model.Track, total time.Duration) time.Duration {
	if t.Bounded() {
		return t.End - t.Start
	}
	if total > t.Start {
		return total - t.Start
	}
	return 0
}

func (p *PlaylistCreator) createM3U(album *model.Album, ext string, total time.Duration) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range album.Tracks {
		if p.extended {
			secs := int(trackDuration(track, total).Seconds())
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", secs, album.Artist, track.Title))
		}
		sb.WriteString(album.TrackFileName(track, ext) + "\n")
	}

	return sb.String()
}

func (p *PlaylistCreator) createPLS(album *model.Album, ext string, total time.Duration) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range album.Tracks {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, album.TrackFileName(track, ext)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, track.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(trackDuration(track, total).Seconds())))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(album.Tracks)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(album *model.Album, ext string) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(album.Name)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range album.Tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(album.TrackFileName(track, ext))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

func (p *PlaylistCreator) createZPL(album *model.Album, ext string, total time.Duration) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(album.Name)))
	sb.WriteString("    <meta name=\"Generator\" content=\"mp3-album-splitter\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(album.Tracks)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range album.Tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(album.TrackFileName(track, ext)),
			escapeXML(album.Name),
			escapeXML(album.Artist),
			escapeXML(track.Title),
			escapeXML(album.Artist),
			trackDuration(track, total).Milliseconds()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
