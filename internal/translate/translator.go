package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"studio/internal/infra"
)

// ErrTranslationFailed signals that the remote translation did not succeed and
// the original text was returned instead. It is advisory; callers proceed with
// the untranslated prompt.
var ErrTranslationFailed = errors.New("translate: translation failed")

// TextGenerator is the subset of the Gemini client the translator needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Translator converts Arabic prompts to English before they reach the image
// model. Text without Arabic script is passed through untouched.
type Translator struct {
	gen    TextGenerator
	logger *infra.Logger
}

// New constructs a Translator backed by the given text generator.
func New(gen TextGenerator, logger *infra.Logger) *Translator {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Translator{gen: gen, logger: logger}
}

// HasArabic reports whether any rune of s belongs to the Arabic script.
func HasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// Translate returns the English form of text. When no Arabic script is present
// the input is returned unchanged without any network call. On failure the
// original text is returned together with ErrTranslationFailed so the caller
// can surface a notice without aborting.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if !HasArabic(text) {
		return text, nil
	}

	prompt := fmt.Sprintf("Translate the following text to English. Respond with only the translation, nothing else: %q", text)
	out, err := t.gen.GenerateText(ctx, prompt)
	if err != nil {
		t.logger.Warn().Err(err).Msg("translate: falling back to original prompt")
		return text, ErrTranslationFailed
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return text, ErrTranslationFailed
	}
	return out, nil
}
