package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HTTPError struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

const ctxExposeInternal = "httperr.expose_internal"

// ExposeInternal decides for every request below it whether 500 responses
// carry the underlying error text. Without it the text is hidden.
func ExposeInternal(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxExposeInternal, expose)
		c.Next()
	}
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond converts any error coming out of a use case into the envelope.
// op names the failing operation for the log line.
func Respond(c *gin.Context, op string, err error) {
	err = Translate(err)
	expose := c.GetBool(ctxExposeInternal)

	if be, ok := As(err); ok {
		status := be.Kind.Status()
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("op", op).Str("code", be.Code).Msg("request failed")
			msg := be.Message
			if be.Kind == KindInternal && !expose {
				msg = "Internal server error"
			}
			Write(c, status, be.Code, msg)
			return
		}
		Write(c, status, be.Code, be.Error())
		return
	}

	log.Error().Err(err).Str("op", op).Msg("unexpected error")
	msg := "Internal server error"
	if expose {
		msg = err.Error()
	}
	Internal(c, "internal_error", msg)
}

// Translate maps store level errors onto the taxonomy and leaves
// everything else untouched.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound("not_found", "Record not found")
	}
	if IsUniqueViolation(err) {
		return ErrConflict("duplicate", "Duplicate value, please use another")
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
