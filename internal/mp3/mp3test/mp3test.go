// Package mp3test builds synthetic MPEG audio streams for tests.
//
// The generated frames are structurally valid (correct header, size and
// timing) but carry silence-like zero payloads; they exercise the frame
// index without needing binary fixtures in the repository.
package mp3test

import "time"

// Frame geometry for the generated stream: MPEG1 Layer III, 128 kbps,
// 44100 Hz, no padding.
const (
	// FrameSize is the byte size of one generated frame.
	FrameSize = 144 * 128000 / 44100

	// FrameDuration is the play time of one generated frame.
	FrameDuration = time.Duration(1152) * time.Second / 44100
)

// Frame returns a single frame. The payload is zeroed.
func Frame() []byte {
	f := make([]byte, FrameSize)
	// 0xFFFB: sync + MPEG1 + Layer III, no CRC.
	// 0x90:   bitrate index 9 (128 kbps), sample rate index 0 (44100 Hz).
	f[0], f[1], f[2], f[3] = 0xFF, 0xFB, 0x90, 0x00
	return f
}

// Stream returns n consecutive frames.
func Stream(n int) []byte {
	out := make([]byte, 0, n*FrameSize)
	for i := 0; i < n; i++ {
		out = append(out, Frame()...)
	}
	return out
}

// FramesFor returns the number of generated frames needed to cover at
// least d of play time.
func FramesFor(d time.Duration) int {
	n := int(d / FrameDuration)
	if time.Duration(n)*FrameDuration < d {
		n++
	}
	return n
}

// ID3v2 returns a minimal empty ID3v2.3 tag block of the given payload
// size, for prepending to a generated stream.
func ID3v2(payload int) []byte {
	tag := make([]byte, 10+payload)
	copy(tag, "ID3")
	tag[3] = 3 // v2.3.0
	tag[6] = byte(payload >> 21 & 0x7f)
	tag[7] = byte(payload >> 14 & 0x7f)
	tag[8] = byte(payload >> 7 & 0x7f)
	tag[9] = byte(payload & 0x7f)
	return tag
}

// ID3v1 returns a 128-byte ID3v1 block for appending to a stream.
func ID3v1() []byte {
	tag := make([]byte, 128)
	copy(tag, "TAG")
	return tag
}
