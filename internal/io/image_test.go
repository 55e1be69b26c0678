package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeBounds(t *testing.T, data []byte) (w, h int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result should be JPEG: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestResizeImage(t *testing.T) {
	svc := NewImageService()

	// Oversized image shrinks with aspect ratio preserved.
	out, err := svc.ResizeImage(encodePNG(t, 2000, 1000), 500, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := decodeBounds(t, out); w != 500 || h != 250 {
		t.Errorf("resized to %dx%d, want 500x250", w, h)
	}

	// Image inside the bounds keeps its dimensions.
	out, err = svc.ResizeImage(encodePNG(t, 100, 80), 500, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := decodeBounds(t, out); w != 100 || h != 80 {
		t.Errorf("got %dx%d, want 100x80", w, h)
	}
}

func TestConvertToJPEG(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ConvertToJPEG(encodePNG(t, 10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output should decode as JPEG: %v", err)
	}
}

func TestConvertToJPEG_Garbage(t *testing.T) {
	if _, err := NewImageService().ConvertToJPEG([]byte("not an image")); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestMIMEForImage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cover.png", "image/png"},
		{"cover.PNG", "image/png"},
		{"cover.jpg", "image/jpeg"},
		{"cover.jpeg", "image/jpeg"},
		{"cover.gif", "image/gif"},
		{"cover", "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := MIMEForImage(tt.path); got != tt.want {
				t.Errorf("MIMEForImage(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
