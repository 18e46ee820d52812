package studio

import (
	"strings"
	"testing"
)

func TestResolveSizeLogoIgnoresAspectRatio(t *testing.T) {
	for _, aspect := range []string{"", "1:1", "16:9", "9:16", "2:3", "weird"} {
		w, h := ResolveSize(KindLogo, aspect)
		if w != 512 || h != 512 {
			t.Fatalf("logo size for %q = %dx%d, want 512x512", aspect, w, h)
		}
	}
}

func TestResolveSizeCover(t *testing.T) {
	tests := []struct {
		aspect string
		w, h   int
	}{
		{"2:3", 720, 1280},
		{"16:9", 1920, 1080},
		{"9:16", 720, 1280},
		{"", 1280, 720},
		{"4:3", 1280, 720},
	}
	for _, tt := range tests {
		w, h := ResolveSize(KindCover, tt.aspect)
		if w != tt.w || h != tt.h {
			t.Fatalf("cover size for %q = %dx%d, want %dx%d", tt.aspect, w, h, tt.w, tt.h)
		}
	}
}

func TestResolveSizeGeneral(t *testing.T) {
	tests := []struct {
		aspect string
		w, h   int
	}{
		{"16:9", 1280, 720},
		{"9:16", 720, 1280},
		{"1:1", 1024, 1024},
		{"", 1024, 1024},
		{"3:2", 1024, 1024},
	}
	for _, tt := range tests {
		w, h := ResolveSize(KindGeneral, tt.aspect)
		if w != tt.w || h != tt.h {
			t.Fatalf("general size for %q = %dx%d, want %dx%d", tt.aspect, w, h, tt.w, tt.h)
		}
	}
}

func TestBuildFinalPrompt(t *testing.T) {
	logo := BuildFinalPrompt(KindLogo, "a coffee shop")
	if logo != "minimalist, iconic, clean, vector style logo for: a coffee shop. No text, no typography, no words." {
		t.Fatalf("logo prompt mismatch: %q", logo)
	}

	cover := BuildFinalPrompt(KindCover, "a space opera")
	if !strings.HasPrefix(cover, "high-quality, artistic, detailed cover art for: a space opera, suitable for a cover.") {
		t.Fatalf("cover prompt mismatch: %q", cover)
	}
	if !strings.Contains(cover, "No text, no typography, no words.") {
		t.Fatalf("cover prompt must forbid typography: %q", cover)
	}

	general := BuildFinalPrompt(KindGeneral, "a mountain lake")
	if general != "a mountain lake, no text, no words, no typography, high quality, detailed, realistic." {
		t.Fatalf("general prompt mismatch: %q", general)
	}
}

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{"logo", KindLogo},
		{" Cover ", KindCover},
		{"general", KindGeneral},
		{"", KindGeneral},
		{"poster", KindGeneral},
	}
	for _, tt := range tests {
		if got := NormalizeKind(tt.raw); got != tt.want {
			t.Fatalf("NormalizeKind(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNewGenerationRequestUsesTranslatedText(t *testing.T) {
	req := NewGenerationRequest("غابة", "a forest", KindGeneral, "16:9")
	if req.RawPrompt != "غابة" {
		t.Fatalf("RawPrompt = %q", req.RawPrompt)
	}
	if !strings.HasPrefix(req.FinalPrompt, "a forest") {
		t.Fatalf("FinalPrompt should be built from translated text: %q", req.FinalPrompt)
	}
	if req.Width != 1280 || req.Height != 720 {
		t.Fatalf("resolution = %dx%d, want 1280x720", req.Width, req.Height)
	}
}
