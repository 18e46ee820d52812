package compose

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// loadFace maps a requested font family onto one of the embedded Go typefaces
// and parses it at the requested pixel size (72 DPI makes points equal pixels).
func loadFace(family string, size float64) (font.Face, error) {
	f, err := opentype.Parse(fontData(family))
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func fontData(family string) []byte {
	switch normalized := strings.ToLower(strings.TrimSpace(family)); {
	case strings.Contains(normalized, "bold"), strings.Contains(normalized, "impact"), strings.Contains(normalized, "black"):
		return gobold.TTF
	case strings.Contains(normalized, "italic"), strings.Contains(normalized, "cursive"):
		return goitalic.TTF
	case strings.Contains(normalized, "mono"), strings.Contains(normalized, "courier"):
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

// parseColor accepts #rgb and #rrggbb hex notation as produced by HTML color
// inputs. Anything unparsable renders white.
func parseColor(raw string) color.Color {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	switch len(raw) {
	case 3:
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	case 6:
	default:
		return color.White
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return color.White
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}
