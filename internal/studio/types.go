package studio

import (
	"strings"
	"time"
)

// Kind enumerates the supported generation modes.
type Kind string

const (
	KindGeneral Kind = "general"
	KindLogo    Kind = "logo"
	KindCover   Kind = "cover"
)

// NormalizeKind sanitizes free-form user input into a supported kind.
func NormalizeKind(kind string) Kind {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case string(KindLogo):
		return KindLogo
	case string(KindCover):
		return KindCover
	default:
		return KindGeneral
	}
}

// GenerationRequest captures one generation action. The derived fields are
// computed deterministically from kind and aspect ratio.
type GenerationRequest struct {
	RawPrompt   string
	Kind        Kind
	AspectRatio string
	Width       int
	Height      int
	FinalPrompt string
}

// NewGenerationRequest resolves the final prompt and resolution for the given
// user input. promptText is the (possibly translated) text the final prompt is
// built from; rawPrompt is kept for reference.
func NewGenerationRequest(rawPrompt, promptText string, kind Kind, aspectRatio string) GenerationRequest {
	width, height := ResolveSize(kind, aspectRatio)
	return GenerationRequest{
		RawPrompt:   rawPrompt,
		Kind:        kind,
		AspectRatio: aspectRatio,
		Width:       width,
		Height:      height,
		FinalPrompt: BuildFinalPrompt(kind, promptText),
	}
}

// GenerationResult holds the decoded bitmap for the most recent generation.
// It is immutable once produced and superseded wholesale by the next request.
type GenerationResult struct {
	ImagePNG          []byte
	Request           GenerationRequest
	TranslationNotice string
	CreatedAt         time.Time
}

// UnderstandingRequest packages an uploaded bitmap for description.
type UnderstandingRequest struct {
	Image    []byte
	MIMEType string
}

// UnderstandingResult is the one-shot description of the last analyzed upload.
type UnderstandingResult struct {
	Description string
	CreatedAt   time.Time
}
