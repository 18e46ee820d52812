package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"studio/internal/compose"
	"studio/internal/middleware"
	"studio/internal/studio"
	"studio/pkg/zip"
)

type overlayPayload struct {
	Content          string `json:"content"`
	Color            string `json:"color"`
	FontFamily       string `json:"font_family"`
	SizePx           int    `json:"size_px"`
	VerticalPosition string `json:"vertical_position"`
}

func (o overlayPayload) options() compose.Options {
	return compose.Options{
		Content:          o.Content,
		Color:            o.Color,
		FontFamily:       o.FontFamily,
		SizePx:           o.SizePx,
		VerticalPosition: compose.Position(o.VerticalPosition),
	}
}

type generateRequest struct {
	Prompt      string          `json:"prompt"`
	Kind        string          `json:"kind"`
	AspectRatio string          `json:"aspect_ratio"`
	Overlay     *overlayPayload `json:"overlay,omitempty"`
}

type generateResponse struct {
	ImageBase64       string `json:"image_base64"`
	Kind              string `json:"kind"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	FinalPrompt       string `json:"final_prompt"`
	Composited        bool   `json:"composited"`
	TranslationNotice string `json:"translation_notice,omitempty"`
}

// ImagesGenerate runs the full generation flow and returns the (optionally
// composited) bitmap inline.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "bad_request", "")
		return
	}

	kind := studio.NormalizeKind(req.Kind)
	result, err := a.Studio.Generate(r.Context(), req.Prompt, kind, req.AspectRatio)
	if err != nil {
		a.writeGenerateError(w, r, err)
		return
	}

	display := result.ImagePNG
	composited := false
	if req.Overlay != nil && overlayApplies(kind, req.Overlay.Content) {
		out, cerr := compose.Composite(result.ImagePNG, req.Overlay.options())
		if cerr != nil {
			// The raw image is still shown when compositing fails.
			a.Logger.Warn().Err(cerr).Msg("handlers: compositing failed, serving raw image")
		} else {
			display = out
			composited = true
		}
	}
	if err := a.Studio.UpdateDisplay(display); err != nil {
		a.Logger.Warn().Err(err).Msg("handlers: display slot not updated")
	}

	resp := generateResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(display),
		Kind:        string(result.Request.Kind),
		Width:       result.Request.Width,
		Height:      result.Request.Height,
		FinalPrompt: result.Request.FinalPrompt,
		Composited:  composited,
	}
	if result.TranslationNotice != "" {
		resp.TranslationNotice = localize("translation_notice", middleware.LocaleFromContext(r.Context()))
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	var genErr *studio.GenerationError
	switch {
	case errors.Is(err, studio.ErrNoPrompt):
		a.error(w, r, http.StatusBadRequest, "no_prompt", "no_prompt", "")
	case errors.Is(err, studio.ErrBusy):
		a.error(w, r, http.StatusConflict, "busy", "busy", "")
	case errors.As(err, &genErr):
		a.error(w, r, http.StatusBadGateway, "generation_failed", "generation_failed", genErr.Message)
	default:
		a.error(w, r, http.StatusBadGateway, "generation_failed", "generation_failed", "")
	}
}

type composeRequest struct {
	ImageBase64 string         `json:"image_base64,omitempty"`
	Overlay     overlayPayload `json:"overlay"`
}

type composeResponse struct {
	ImageBase64 string `json:"image_base64"`
	Composited  bool   `json:"composited"`
}

// ImagesCompose recomputes the overlay composite. When no base image is
// supplied the latest generation result is used and the display slot is
// refreshed, which is the "overlay field changed" path.
func (a *App) ImagesCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "bad_request", "")
		return
	}

	var base []byte
	fromResult := false
	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			a.error(w, r, http.StatusBadRequest, "bad_request", "bad_request", "")
			return
		}
		base = decoded
	} else {
		result, _, err := a.Studio.Snapshot()
		if err != nil {
			a.error(w, r, http.StatusNotFound, "no_result", "no_result", "")
			return
		}
		base = result.ImagePNG
		fromResult = true
	}

	out, err := compose.Composite(base, req.Overlay.options())
	if err != nil {
		a.error(w, r, http.StatusUnprocessableEntity, "load_failed", "load_failed", "")
		return
	}
	if fromResult {
		if err := a.Studio.UpdateDisplay(out); err != nil {
			a.Logger.Warn().Err(err).Msg("handlers: display slot not updated")
		}
	}

	a.json(w, http.StatusOK, composeResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(out),
		Composited:  !bytes.Equal(out, base),
	})
}

// ImagesArtifact streams the displayed bitmap as a PNG download.
func (a *App) ImagesArtifact(w http.ResponseWriter, r *http.Request) {
	name, data, err := a.Studio.Artifact()
	if err != nil {
		a.error(w, r, http.StatusNotFound, "no_result", "no_result", "")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImagesArtifactZip bundles the raw and composited bitmaps into one archive.
func (a *App) ImagesArtifactZip(w http.ResponseWriter, r *http.Request) {
	result, display, err := a.Studio.Snapshot()
	if err != nil {
		a.error(w, r, http.StatusNotFound, "no_result", "no_result", "")
		return
	}

	stem := fmt.Sprintf("%s_%d", result.Request.Kind, result.CreatedAt.UnixMilli())
	assets := []zip.Asset{
		{Filename: stem + "_raw.png", MIME: "image/png", Data: result.ImagePNG},
	}
	if !bytes.Equal(display, result.ImagePNG) {
		assets = append(assets, zip.Asset{Filename: stem + "_composited.png", MIME: "image/png", Data: display})
	}

	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", stem))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func overlayApplies(kind studio.Kind, content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	return kind == studio.KindLogo || kind == studio.KindCover
}
