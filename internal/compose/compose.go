package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ErrLoad indicates the base image could not be decoded. The caller should
// fall back to displaying the uncomposited image.
var ErrLoad = errors.New("compose: base image could not be decoded")

// Position selects the vertical anchor for the overlay text.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

const (
	// edgePadding keeps top/bottom anchored text away from the image border.
	edgePadding = 20

	shadowOffsetX = 2
	shadowOffsetY = 2
	shadowSigma   = 5
	shadowAlpha   = 0.7
)

// Options describes how the overlay text is styled and placed.
type Options struct {
	Content          string
	Color            string
	FontFamily       string
	SizePx           int
	VerticalPosition Position
}

// Composite draws the overlay text onto the base image and returns the result
// as PNG bytes. An empty base or blank content is a no-op passthrough. The
// drop shadow is rendered on its own layer, so repeated calls never accumulate
// shadow state.
func Composite(base []byte, opts Options) ([]byte, error) {
	if len(base) == 0 || strings.TrimSpace(opts.Content) == "" {
		return base, nil
	}

	img, err := imaging.Decode(bytes.NewReader(base))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	size := opts.SizePx
	if size <= 0 {
		size = 48
	}

	face, err := loadFace(opts.FontFamily, float64(size))
	if err != nil {
		return nil, fmt.Errorf("compose: load font: %w", err)
	}

	anchorX := float64(width) / 2
	anchorY := AnchorY(height, size, opts.VerticalPosition)

	// Shadow layer: same text in translucent black, offset and blurred.
	shadow := gg.NewContext(width, height)
	shadow.SetFontFace(face)
	shadow.SetRGBA(0, 0, 0, shadowAlpha)
	shadow.DrawStringAnchored(opts.Content, anchorX+shadowOffsetX, anchorY+shadowOffsetY, 0.5, 0.5)
	blurred := imaging.Blur(shadow.Image(), shadowSigma)

	dc := gg.NewContextForImage(img)
	dc.DrawImage(blurred, 0, 0)
	dc.SetFontFace(face)
	dc.SetColor(parseColor(opts.Color))
	dc.DrawStringAnchored(opts.Content, anchorX, anchorY, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("compose: encode result: %w", err)
	}
	return buf.Bytes(), nil
}

// AnchorY returns the vertical anchor for the given surface height, font size
// and position. Unrecognized positions fall back to center.
func AnchorY(height, sizePx int, pos Position) float64 {
	half := float64(sizePx) / 2
	switch pos {
	case PositionTop:
		return edgePadding + half
	case PositionBottom:
		return float64(height) - edgePadding - half
	default:
		return float64(height) / 2
	}
}
