package handlers

import (
	"errors"
	"io"
	"net/http"

	"studio/internal/studio"
)

type understandResponse struct {
	Description string `json:"description"`
}

// ImagesUnderstand accepts a multipart upload ("image" field) and returns a
// natural-language description of it.
func (a *App) ImagesUnderstand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.error(w, r, http.StatusRequestEntityTooLarge, "payload_too_large", "payload_too_large", "")
			return
		}
		a.error(w, r, http.StatusBadRequest, "no_image", "no_image", "")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, r, http.StatusBadRequest, "no_image", "no_image", "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "bad_request", "")
		return
	}

	result, err := a.Studio.Understand(r.Context(), studio.UnderstandingRequest{
		Image:    data,
		MIMEType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		a.writeUnderstandError(w, r, err)
		return
	}

	a.json(w, http.StatusOK, understandResponse{Description: result.Description})
}

func (a *App) writeUnderstandError(w http.ResponseWriter, r *http.Request, err error) {
	var undErr *studio.UnderstandingError
	switch {
	case errors.Is(err, studio.ErrNoImage):
		a.error(w, r, http.StatusBadRequest, "no_image", "no_image", "")
	case errors.Is(err, studio.ErrBusy):
		a.error(w, r, http.StatusConflict, "busy", "busy", "")
	case errors.As(err, &undErr):
		a.error(w, r, http.StatusBadGateway, "understanding_failed", "understanding_failed", undErr.Message)
	default:
		a.error(w, r, http.StatusBadGateway, "understanding_failed", "understanding_failed", "")
	}
}
