// Package mp3 indexes MPEG audio frames so a recording can be sliced on
// frame boundaries without decoding or re-encoding.
//
// A Stream is built once from the raw file bytes. Each frame's size and
// play time are derived from its 4-byte header, giving an exact mapping
// from time offsets to byte ranges:
//
//	stream, err := mp3.Parse(data)
//	part := stream.Slice(30*time.Second, 75*time.Second)
//	os.WriteFile("out.mp3", part, 0644)
//
// Slices are partitions: every frame belongs to exactly one slice, so
// concatenating adjacent slices reproduces the audio data byte for byte.
// Leading ID3v2 and trailing ID3v1 tag blocks are excluded from slices;
// tagging output files is the caller's concern.
package mp3

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Layer III bitrate tables in kbps, indexed by the 4-bit bitrate field.
// Index 0 (free format) and 15 (invalid) are unsupported.
var (
	bitrateMPEG1 = []int{
		0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
	}
	bitrateMPEG2 = []int{
		0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0,
	}
)

// Sample rate tables in Hz, indexed by the 2-bit sample rate field.
var (
	sampleRateMPEG1  = []int{44100, 48000, 32000, 0}
	sampleRateMPEG2  = []int{22050, 24000, 16000, 0}
	sampleRateMPEG25 = []int{11025, 12000, 8000, 0}
)

// frame is one MPEG audio frame within the stream.
type frame struct {
	offset int64
	size   int
	dur    time.Duration
}

// Stream is a parsed MPEG audio stream: the raw bytes plus a frame index.
type Stream struct {
	data   []byte
	frames []frame
	total  time.Duration
}

// Parse scans data for MPEG Layer III audio frames and builds the index.
//
// A leading ID3v2 tag is skipped via its syncsafe size field, and a
// trailing ID3v1 block is ignored. Bytes that do not form a valid frame
// header are skipped by scanning forward to the next frame sync, so
// padding after the ID3v2 block or junk between frames does not abort
// the parse. A stream without a single frame is an error.
func Parse(data []byte) (*Stream, error) {
	offset := int64(id3v2Size(data))
	end := int64(len(data))
	if end-offset >= 128 && string(data[end-128:end-125]) == "TAG" {
		end -= 128 // ID3v1
	}

	s := &Stream{data: data}
	for offset+4 <= end {
		size, dur, err := parseHeader(data[offset:])
		if err != nil {
			next := nextSync(data, offset+1, end)
			if next < 0 {
				break
			}
			offset = next
			continue
		}
		if offset+int64(size) > end {
			// Truncated trailing frame, common on hand-cut rips.
			break
		}
		s.frames = append(s.frames, frame{offset: offset, size: size, dur: dur})
		s.total += dur
		offset += int64(size)
	}

	if len(s.frames) == 0 {
		return nil, fmt.Errorf("no MPEG audio frames found")
	}
	return s, nil
}

// Duration returns the total play time of all indexed frames.
func (s *Stream) Duration() time.Duration {
	return s.total
}

// Frames returns the number of indexed frames.
func (s *Stream) Frames() int {
	return len(s.frames)
}

// Slice returns the raw bytes of every frame whose start time falls in
// [start, end). A negative end means "to the end of the stream". Frames
// are contiguous, so the result is a single copied sub-range of the
// source data. An empty window yields nil.
func (s *Stream) Slice(start, end time.Duration) []byte {
	first, last := -1, -1
	var t time.Duration
	for i, f := range s.frames {
		if t >= start && (end < 0 || t < end) {
			if first < 0 {
				first = i
			}
			last = i
		}
		t += f.dur
	}
	if first < 0 {
		return nil
	}

	lo := s.frames[first].offset
	hi := s.frames[last].offset + int64(s.frames[last].size)
	out := make([]byte, hi-lo)
	copy(out, s.data[lo:hi])
	return out
}

// nextSync returns the offset of the next potential frame sync at or
// after from, or -1 when none remains before end. Candidates are
// validated by parseHeader; this only finds the 11 sync bits.
func nextSync(data []byte, from, end int64) int64 {
	for i := from; i+4 <= end; i++ {
		if data[i] == 0xFF && data[i+1]&0xE0 == 0xE0 {
			return i
		}
	}
	return -1
}

// id3v2Size returns the byte length of a leading ID3v2 tag, or 0.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0
	}
	// Syncsafe 28-bit size, excluding the 10-byte header.
	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	size += 10
	if data[5]&0x10 != 0 {
		size += 10 // footer present
	}
	if size > len(data) {
		return 0
	}
	return size
}

// parseHeader validates a 4-byte frame header and returns the frame's
// total byte size and play time.
func parseHeader(data []byte) (size int, dur time.Duration, err error) {
	header := binary.BigEndian.Uint32(data[:4])

	// Frame sync: 11 set bits.
	if header&0xFFE00000 != 0xFFE00000 {
		return 0, 0, fmt.Errorf("invalid frame sync")
	}

	version := (header >> 19) & 0x3 // 00=MPEG2.5, 10=MPEG2, 11=MPEG1
	layer := (header >> 17) & 0x3   // 01=Layer III
	if version == 1 {
		return 0, 0, fmt.Errorf("reserved MPEG version")
	}
	if layer != 1 {
		return 0, 0, fmt.Errorf("unsupported layer (only Layer III)")
	}

	bitrates := bitrateMPEG2
	sampleRates := sampleRateMPEG25
	samplesPerFrame := 576
	switch version {
	case 3: // MPEG1
		bitrates = bitrateMPEG1
		sampleRates = sampleRateMPEG1
		samplesPerFrame = 1152
	case 2: // MPEG2
		sampleRates = sampleRateMPEG2
	}

	bitrate := bitrates[(header>>12)&0xF] * 1000
	sampleRate := sampleRates[(header>>10)&0x3]
	if bitrate == 0 || sampleRate == 0 {
		return 0, 0, fmt.Errorf("invalid bitrate or sample rate index")
	}

	padding := int((header >> 9) & 0x1)
	size = samplesPerFrame/8*bitrate/sampleRate + padding
	dur = time.Duration(samplesPerFrame) * time.Second / time.Duration(sampleRate)
	return size, dur, nil
}
