package studio

import "fmt"

// The image model is explicitly instructed to omit text: typography is
// rendered client-side by the compositor, which keeps full control over
// styling.
const (
	logoPromptFormat    = "minimalist, iconic, clean, vector style logo for: %s. No text, no typography, no words."
	coverPromptFormat   = "high-quality, artistic, detailed cover art for: %s, suitable for a cover. No text, no typography, no words."
	generalPromptSuffix = ", no text, no words, no typography, high quality, detailed, realistic."
)

// BuildFinalPrompt wraps the (already translated) prompt text according to the
// generation kind.
func BuildFinalPrompt(kind Kind, text string) string {
	switch kind {
	case KindLogo:
		return fmt.Sprintf(logoPromptFormat, text)
	case KindCover:
		return fmt.Sprintf(coverPromptFormat, text)
	default:
		return text + generalPromptSuffix
	}
}

// ResolveSize maps kind and aspect ratio to the request resolution. Logos are
// always square regardless of the supplied ratio; unrecognized ratios fall
// back to each kind's default.
func ResolveSize(kind Kind, aspectRatio string) (width, height int) {
	switch kind {
	case KindLogo:
		return 512, 512
	case KindCover:
		switch aspectRatio {
		case "2:3":
			return 720, 1280
		case "16:9":
			return 1920, 1080
		case "9:16":
			return 720, 1280
		default:
			return 1280, 720
		}
	default:
		switch aspectRatio {
		case "16:9":
			return 1280, 720
		case "9:16":
			return 720, 1280
		default:
			return 1024, 1024
		}
	}
}
