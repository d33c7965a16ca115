package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tunegrab/tunegrab/internal/apperror"
	"github.com/tunegrab/tunegrab/internal/archive"
	"github.com/tunegrab/tunegrab/internal/convert"
	"github.com/tunegrab/tunegrab/internal/model"
)

// toAppError maps domain errors to the HTTP error taxonomy
func toAppError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, convert.ErrInvalidURL):
		return apperror.New(apperror.BadRequest, err.Error())
	case errors.Is(err, convert.ErrJobNotFound):
		return apperror.New(apperror.NotFound, "Conversion not found")
	case errors.Is(err, convert.ErrFileNotFound):
		return apperror.New(apperror.NotFound, "File not found")
	case errors.Is(err, archive.ErrNoEntries):
		return apperror.New(apperror.Internal, "Failed to create ZIP file")
	default:
		return apperror.New(apperror.Internal, "internal server error")
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	writeError(w, appErr.HTTPStatus(), appErr.Message())
}

// Prober resolves a URL into media metadata before conversion
type Prober interface {
	Probe(ctx context.Context, url string) (*model.MediaInfo, error)
}

type handler struct {
	converter convert.Converter
	prober    Prober
}

type infoRequest struct {
	URL string `json:"url"`
}

type convertRequest struct {
	URL         string `json:"url"`
	TotalTracks int    `json:"totalTracks"`
}

type convertResponse struct {
	ConversionID string `json:"conversionId"`
}

type filesResponse struct {
	Files []string `json:"files"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) info(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	media, err := h.prober.Probe(r.Context(), req.URL)
	if err != nil {
		slog.Error("probe failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get media info")
		return
	}
	writeJSON(w, http.StatusOK, media)
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	id, err := h.converter.Create(req.URL, req.TotalTracks)
	if err != nil {
		if !errors.Is(err, convert.ErrInvalidURL) {
			slog.Error("job creation failed", "url", req.URL, "error", err)
		}
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{ConversionID: id})
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	job, err := h.converter.Status(r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *handler) files(w http.ResponseWriter, r *http.Request) {
	files, err := h.converter.Files(r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filesResponse{Files: files})
}

func (h *handler) download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	filename := r.PathValue("filename")

	path, err := h.converter.FilePath(id, filename)
	if err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

func (h *handler) downloadZip(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	path, err := h.converter.ArchivePath(id)
	if err != nil {
		if !errors.Is(err, convert.ErrJobNotFound) {
			slog.Error("archive request failed", "job", id, "error", err)
		}
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.ArchiveName))
	http.ServeFile(w, r, path)
}
