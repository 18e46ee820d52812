package compose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestCompositePassthroughOnBlankContent(t *testing.T) {
	base := encodeTestImage(t, 64, 64)

	for _, content := range []string{"", "   ", "\t\n"} {
		out, err := Composite(base, Options{Content: content, SizePx: 48})
		if err != nil {
			t.Fatalf("unexpected error for content %q: %v", content, err)
		}
		if !bytes.Equal(out, base) {
			t.Fatalf("content %q should return the base unchanged", content)
		}
	}
}

func TestCompositePassthroughOnEmptyBase(t *testing.T) {
	out, err := Composite(nil, Options{Content: "hello", SizePx: 48})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("empty base should pass through, got %d bytes", len(out))
	}
}

func TestCompositeFailsWithLoadErrorOnBadImage(t *testing.T) {
	_, err := Composite([]byte("not an image"), Options{Content: "hello", SizePx: 48})
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("want ErrLoad, got %v", err)
	}
}

func TestCompositeProducesDecodableImageWithSameDimensions(t *testing.T) {
	base := encodeTestImage(t, 200, 120)

	out, err := Composite(base, Options{
		Content:          "Sample Title",
		Color:            "#ffcc00",
		SizePx:           24,
		VerticalPosition: PositionBottom,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(out, base) {
		t.Fatal("composited output should differ from the base image")
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 120 {
		t.Fatalf("output dimensions = %dx%d, want 200x120", cfg.Width, cfg.Height)
	}
}

func TestCompositeIsDeterministic(t *testing.T) {
	base := encodeTestImage(t, 100, 100)
	opts := Options{Content: "hi", Color: "#ffffff", SizePx: 20}

	first, err := Composite(base, opts)
	if err != nil {
		t.Fatalf("first composite: %v", err)
	}
	second, err := Composite(base, opts)
	if err != nil {
		t.Fatalf("second composite: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeated composites should be identical; shadow state must not accumulate")
	}
}

func TestAnchorY(t *testing.T) {
	tests := []struct {
		name   string
		height int
		size   int
		pos    Position
		want   float64
	}{
		{"top", 500, 48, PositionTop, 44},
		{"bottom", 500, 48, PositionBottom, 456},
		{"center", 500, 48, PositionCenter, 250},
		{"unknown falls back to center", 500, 48, Position("diagonal"), 250},
		{"empty falls back to center", 300, 32, Position(""), 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnchorY(tt.height, tt.size, tt.pos); got != tt.want {
				t.Fatalf("AnchorY(%d, %d, %q) = %v, want %v", tt.height, tt.size, tt.pos, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		raw  string
		want color.Color
	}{
		{"#ffcc00", color.NRGBA{R: 0xff, G: 0xcc, B: 0x00, A: 255}},
		{"ffcc00", color.NRGBA{R: 0xff, G: 0xcc, B: 0x00, A: 255}},
		{"#fc0", color.NRGBA{R: 0xff, G: 0xcc, B: 0x00, A: 255}},
		{"", color.White},
		{"#nothex", color.White},
	}
	for _, tt := range tests {
		if got := parseColor(tt.raw); got != tt.want {
			t.Fatalf("parseColor(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}
