package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/middleware"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// caller returns the authenticated identity. Routes behind AuthMiddleware
// always have one; the false branch has already answered 401.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "missing_token", "Access token required")
	}
	return id, ok
}

func paramUUID(c *gin.Context, name, code, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		// ids that cannot exist are reported like missing rows
		httperr.NotFound(c, code, message)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", validators.Translate(err))
		return false
	}
	return true
}

// page reads ?page= and ?limit= with sane bounds.
func page(c *gin.Context) (pageNum, limit, offset int) {
	pageNum, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if pageNum <= 0 {
		pageNum = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return pageNum, limit, (pageNum - 1) * limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern that
// declares ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
