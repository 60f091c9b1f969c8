package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/imaging"
	"github.com/BruksfildServices01/homeservices/internal/infra/storage"
)

// objectStore is satisfied by *storage.S3Store.
type objectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// storeImage reads the multipart "file" field, re-encodes it as WebP and
// uploads it under prefix. It answers the request itself on failure.
func storeImage(c *gin.Context, store objectStore, prefix string, opt imaging.Options) (string, bool) {
	if store == nil {
		uploadsDisabled(c)
		return "", false
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "file is required")
		return "", false
	}
	if fh.Size > imaging.MaxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds 5MB")
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Could not read file")
		return "", false
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Could not read file")
		return "", false
	}

	out, err := imaging.ToWebP(raw, opt)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			httperr.BadRequest(c, "unsupported_image", "Only JPEG, PNG, GIF and WebP images are accepted")
			return "", false
		}
		httperr.Respond(c, "upload.encode", err)
		return "", false
	}

	key := prefix + "/" + uuid.NewString() + imaging.Extension
	url, err := store.Put(c.Request.Context(), key, imaging.ContentType, out)
	if errors.Is(err, storage.ErrDisabled) {
		uploadsDisabled(c)
		return "", false
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("object upload failed")
		httperr.Respond(c, "upload.put", httperr.ErrUpstream("storage_error", "Failed to store file"))
		return "", false
	}

	return url, true
}

func uploadsDisabled(c *gin.Context) {
	httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "File uploads are not configured")
}
