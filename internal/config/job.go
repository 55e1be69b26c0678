package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// jobFields is the number of values a job file must carry, in order.
const jobFields = 6

// Job describes one splitting run, read from a plain-text job file with
// one value per non-empty line, in fixed order:
//
//	<source audio path>
//	<tracklist file path>
//	<cover image path>
//	<output directory path>
//	<album name>
//	<artist name>
//
// Surrounding double quotes on any line are stripped (Windows "copy as
// path" wraps paths in quotes). Blank lines are skipped entirely, not
// treated as positional placeholders, so an empty field cannot be
// represented by an empty line.
type Job struct {
	AudioPath     string
	TracklistPath string
	CoverPath     string
	OutputDir     string
	AlbumName     string
	Artist        string
}

// ParseJob reads a job definition from r.
//
// Fewer than six values is an error naming the count found. Extra
// trailing lines are ignored.
func ParseJob(r io.Reader) (*Job, error) {
	var values []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, `"`) {
			line = strings.Trim(line, `"`)
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	if len(values) < jobFields {
		return nil, fmt.Errorf("job file has %d values, want %d (audio, tracklist, cover, output dir, album, artist)", len(values), jobFields)
	}

	return &Job{
		AudioPath:     values[0],
		TracklistPath: values[1],
		CoverPath:     values[2],
		OutputDir:     values[3],
		AlbumName:     values[4],
		Artist:        values[5],
	}, nil
}

// LoadJob opens and parses the job file at path.
func LoadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening job file: %w", err)
	}
	defer f.Close()

	return ParseJob(f)
}
