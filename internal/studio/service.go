package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"studio/internal/infra"
	"studio/internal/providers/genai"
	"studio/internal/providers/imagen"
)

// understandInstruction is the fixed prompt sent with every uploaded image.
const understandInstruction = "Describe this image in detail."

// ImageGenerator produces a single bitmap for a prompt at a resolution.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, width, height int) ([]byte, error)
}

// Describer answers a textual instruction about inline image bytes.
type Describer interface {
	DescribeImage(ctx context.Context, instruction, mimeType string, data []byte) (string, error)
}

// Translator normalizes prompt text to English. Implementations must return
// the original text alongside a non-nil error when translation fails.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// flowGuard is the per-flow in-flight flag plus an invocation sequence used to
// discard stale responses. Each flow owns exactly one guard.
type flowGuard struct {
	mu       sync.Mutex
	inFlight bool
	seq      uint64
}

func (f *flowGuard) begin() (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight {
		return 0, ErrBusy
	}
	f.inFlight = true
	f.seq++
	return f.seq, nil
}

func (f *flowGuard) finish() {
	f.mu.Lock()
	f.inFlight = false
	f.mu.Unlock()
}

// current reports whether seq still identifies the most recently started
// invocation.
func (f *flowGuard) current(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq == seq
}

// GenerationFlowState owns the generation flow's result slot: the raw result
// of the latest completed generation plus the bitmap currently on display
// (composited or raw).
type GenerationFlowState struct {
	guard   flowGuard
	mu      sync.Mutex
	result  *GenerationResult
	display []byte
}

// UnderstandingFlowState owns the understanding flow's one-shot result slot.
type UnderstandingFlowState struct {
	guard  flowGuard
	mu     sync.Mutex
	result *UnderstandingResult
}

// Service orchestrates the generation and understanding flows. Both flows run
// one attempt per trigger; there is no retry, backoff, or cancellation.
type Service struct {
	images     ImageGenerator
	describer  Describer
	translator Translator
	logger     *infra.Logger

	gen GenerationFlowState
	und UnderstandingFlowState
}

// NewService wires the orchestrator with its providers.
func NewService(images ImageGenerator, describer Describer, translator Translator, logger *infra.Logger) *Service {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{
		images:     images,
		describer:  describer,
		translator: translator,
		logger:     logger,
	}
}

// Generate runs the full generation flow: translate, build the final prompt,
// call the image service, decode, and store the result. The flow rejects
// re-triggering while in flight. When the caller gives up before the upstream
// answers, the flow is freed immediately and the late response is committed
// only if no newer invocation has started since.
func (s *Service) Generate(ctx context.Context, rawPrompt string, kind Kind, aspectRatio string) (*GenerationResult, error) {
	if strings.TrimSpace(rawPrompt) == "" {
		return nil, ErrNoPrompt
	}

	seq, err := s.gen.guard.begin()
	if err != nil {
		return nil, err
	}

	// Translation is attempted unconditionally; a failure downgrades to a
	// notice and the original text is used.
	promptText, terr := s.translator.Translate(ctx, rawPrompt)
	var notice string
	if terr != nil {
		notice = terr.Error()
		s.logger.Warn().Err(terr).Msg("studio: prompt translation failed, continuing with original text")
	}

	req := NewGenerationRequest(rawPrompt, promptText, kind, aspectRatio)

	s.logger.Debug().
		Str("kind", string(req.Kind)).
		Str("aspect_ratio", req.AspectRatio).
		Int("width", req.Width).
		Int("height", req.Height).
		Msg("studio: dispatching generation request")

	type outcome struct {
		result *GenerationResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		data, err := s.images.Generate(ctx, req.FinalPrompt, req.Width, req.Height)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		result := &GenerationResult{
			ImagePNG:          data,
			Request:           req,
			TranslationNotice: notice,
			CreatedAt:         time.Now(),
		}
		s.commitGeneration(seq, result)
		done <- outcome{result: result}
	}()

	select {
	case <-ctx.Done():
		s.gen.guard.finish()
		return nil, ctx.Err()
	case out := <-done:
		s.gen.guard.finish()
		if out.err != nil {
			return nil, &GenerationError{Message: upstreamMessage(out.err), Err: out.err}
		}
		return out.result, nil
	}
}

// commitGeneration stores the result unless a newer invocation has started in
// the meantime, in which case the stale response is discarded.
func (s *Service) commitGeneration(seq uint64, result *GenerationResult) {
	if !s.gen.guard.current(seq) {
		s.logger.Debug().Msg("studio: discarding stale generation result")
		return
	}
	s.gen.mu.Lock()
	s.gen.result = result
	s.gen.display = result.ImagePNG
	s.gen.mu.Unlock()
}

// Understand runs the understanding flow for an uploaded bitmap. An empty
// upload fails immediately, before any network call. Caller cancellation is
// handled the same way as in Generate: the flow is freed and the late
// response is committed only while it is still the newest invocation.
func (s *Service) Understand(ctx context.Context, req UnderstandingRequest) (*UnderstandingResult, error) {
	if len(req.Image) == 0 {
		return nil, ErrNoImage
	}

	seq, err := s.und.guard.begin()
	if err != nil {
		return nil, err
	}

	type outcome struct {
		result *UnderstandingResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := s.describer.DescribeImage(ctx, understandInstruction, req.MIMEType, req.Image)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		result := &UnderstandingResult{Description: text, CreatedAt: time.Now()}
		s.commitUnderstanding(seq, result)
		done <- outcome{result: result}
	}()

	select {
	case <-ctx.Done():
		s.und.guard.finish()
		return nil, ctx.Err()
	case out := <-done:
		s.und.guard.finish()
		if out.err != nil {
			return nil, &UnderstandingError{Message: upstreamMessage(out.err), Err: out.err}
		}
		return out.result, nil
	}
}

// commitUnderstanding mirrors commitGeneration for the understanding flow.
func (s *Service) commitUnderstanding(seq uint64, result *UnderstandingResult) {
	if !s.und.guard.current(seq) {
		s.logger.Debug().Msg("studio: discarding stale understanding result")
		return
	}
	s.und.mu.Lock()
	s.und.result = result
	s.und.mu.Unlock()
}

// UpdateDisplay replaces the displayed bitmap after the overlay was
// recomposited. It fails when no generation has completed yet.
func (s *Service) UpdateDisplay(png []byte) error {
	s.gen.mu.Lock()
	defer s.gen.mu.Unlock()
	if s.gen.result == nil {
		return ErrNoResult
	}
	s.gen.display = png
	return nil
}

// Artifact returns the downloadable bitmap (composited when an overlay was
// applied) along with its suggested filename.
func (s *Service) Artifact() (string, []byte, error) {
	result, display, err := s.Snapshot()
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("%s_%d.png", result.Request.Kind, result.CreatedAt.UnixMilli())
	return name, display, nil
}

// Snapshot returns the latest generation result and the displayed bitmap.
func (s *Service) Snapshot() (*GenerationResult, []byte, error) {
	s.gen.mu.Lock()
	defer s.gen.mu.Unlock()
	if s.gen.result == nil {
		return nil, nil, ErrNoResult
	}
	display := s.gen.display
	if len(display) == 0 {
		display = s.gen.result.ImagePNG
	}
	return s.gen.result, display, nil
}

// LastDescription returns the latest understanding result.
func (s *Service) LastDescription() (*UnderstandingResult, error) {
	s.und.mu.Lock()
	defer s.und.mu.Unlock()
	if s.und.result == nil {
		return nil, ErrNoResult
	}
	return s.und.result, nil
}

// upstreamMessage extracts the most user-relevant message from a provider
// error.
func upstreamMessage(err error) string {
	var imagenStatus *imagen.StatusError
	if errors.As(err, &imagenStatus) {
		return imagenStatus.Message
	}
	var genaiStatus *genai.StatusError
	if errors.As(err, &genaiStatus) {
		return genaiStatus.Message
	}
	if errors.Is(err, imagen.ErrNoImage) {
		return "no image data in response"
	}
	if errors.Is(err, genai.ErrNoContent) {
		return "no content"
	}
	return err.Error()
}
