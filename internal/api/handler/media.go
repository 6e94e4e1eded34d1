package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Rrens/birthday-builder/internal/api/response"
	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const defaultMediaType = "application/octet-stream"

// MediaOpener starts a download for an opaque media reference
type MediaOpener interface {
	Open(ctx context.Context, ref string) (*domain.MediaStream, error)
}

// MediaHandler proxies stored media to visitors
type MediaHandler struct {
	media MediaOpener
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media MediaOpener) *MediaHandler {
	return &MediaHandler{media: media}
}

// Proxy streams the referenced media without buffering it
func (h *MediaHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	ref := mediaRef(r)
	if ref == "" {
		response.NotFound(w, "media not found")
		return
	}

	stream, err := h.media.Open(r.Context(), ref)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			response.NotFound(w, "media not found")
			return
		}
		log.Error().Err(err).Str("file_id", ref).Msg("Media fetch failed")
		response.BadGateway(w, "could not fetch media")
		return
	}
	defer stream.Body.Close()

	contentType := stream.ContentType
	if contentType == "" {
		contentType = defaultMediaType
	}
	w.Header().Set("Content-Type", contentType)
	if stream.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(stream.ContentLength, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, stream.Body)
	if err != nil {
		if r.Context().Err() != nil {
			log.Debug().Str("file_id", ref).Int64("bytes", n).Msg("Visitor disconnected during media stream")
			return
		}
		log.Warn().Err(err).Str("file_id", ref).Int64("bytes", n).Msg("Media stream interrupted")
	}
}

// mediaRef returns the decoded reference from the path.
// chi matches on the escaped path only when it differs from the decoded one (an escaped "/"),
// and the parameter then still needs decoding.
func mediaRef(r *http.Request) string {
	ref := chi.URLParam(r, "fileID")
	if r.URL.RawPath == "" {
		return ref
	}
	if decoded, err := url.PathUnescape(ref); err == nil {
		return decoded
	}
	return ref
}
