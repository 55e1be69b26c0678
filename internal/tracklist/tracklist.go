package tracklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/model"
)

// TimeSeparator is the default separator inside timestamps ("01:33:20").
const TimeSeparator = ":"

// FormatError describes a tracklist line or timestamp that does not match
// the expected format. It is raised at parse time, before any album is
// built, and aborts the whole parse.
type FormatError struct {
	// Line is the 1-based line number in the tracklist, or 0 when the
	// error concerns a bare timestamp string.
	Line int

	// Input is the offending line or timestamp.
	Input string

	// Reason describes what was wrong with the input.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("tracklist line %d %q: %s", e.Line, e.Input, e.Reason)
	}
	return fmt.Sprintf("timestamp %q: %s", e.Input, e.Reason)
}

// ParseTimestamp converts a clock value of the form "mm:ss" or "hh:mm:ss"
// into a duration.
//
// The separator must occur exactly once (minutes and seconds) or exactly
// twice (hours, minutes, seconds); any other count is a *FormatError
// naming the input and the count. All components are parsed as
// non-negative integers. Fractional seconds are not supported.
//
// Example:
//
//	ParseTimestamp("03:55", ":")    // 3m55s
//	ParseTimestamp("01:10:05", ":") // 1h10m5s
func ParseTimestamp(s, sep string) (time.Duration, error) {
	parts := strings.Split(s, sep)

	var hours, mins, secs int
	var err error
	switch count := strings.Count(s, sep); count {
	case 1:
		mins, err = parseComponent(s, parts[0])
		if err == nil {
			secs, err = parseComponent(s, parts[1])
		}
	case 2:
		hours, err = parseComponent(s, parts[0])
		if err == nil {
			mins, err = parseComponent(s, parts[1])
		}
		if err == nil {
			secs, err = parseComponent(s, parts[2])
		}
	default:
		return 0, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("number of %q separators is invalid (%d)", sep, count),
		}
	}
	if err != nil {
		return 0, err
	}

	total := hours*3600 + mins*60 + secs
	return time.Duration(total) * time.Second, nil
}

func parseComponent(timestamp, part string) (int, error) {
	n, err := strconv.Atoi(part)
	if err != nil || n < 0 {
		return 0, &FormatError{
			Input:  timestamp,
			Reason: fmt.Sprintf("component %q is not a non-negative integer", part),
		}
	}
	return n, nil
}

// Parse reads an ordered tracklist from r, one track per non-empty line,
// in the form "<timestamp><space><title>".
//
// Each line is split at the first space only, so titles may themselves
// contain spaces; the title is the unaltered remainder of the line.
// Tracks are numbered 1..n in file order. After all tracks are built, a
// single finalization pass copies each successor's start time into the
// predecessor's end time; the last track's end stays model.Unbounded.
//
// A malformed line (no space, or unparsable timestamp) yields a
// *FormatError carrying the line number and content. An empty tracklist
// parses to zero tracks; rejecting that is the splitter's job.
func Parse(r io.Reader) ([]*model.Track, error) {
	var tracks []*model.Track

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		track, err := parseLine(line, len(tracks)+1)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = lineNo
				fe.Input = line
			}
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tracklist: %w", err)
	}

	finalize(tracks)
	return tracks, nil
}

// ParseFile opens and parses the tracklist at path.
func ParseFile(path string) ([]*model.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tracklist: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// parseLine builds a single track from "<timestamp> <title>".
func parseLine(line string, number int) (*model.Track, error) {
	idx := strings.Index(line, " ")
	if idx < 0 {
		return nil, &FormatError{Reason: "no space between timestamp and title"}
	}

	start, err := ParseTimestamp(line[:idx], TimeSeparator)
	if err != nil {
		return nil, err
	}

	return &model.Track{
		Number: number,
		Title:  line[idx+1:],
		Start:  start,
		End:    model.Unbounded,
	}, nil
}

// finalize runs the end-time pass: every track ends where its successor
// starts. The last track keeps model.Unbounded.
func finalize(tracks []*model.Track) {
	for i := 0; i < len(tracks)-1; i++ {
		tracks[i].End = tracks[i+1].Start
	}
}
