package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const requestTimeout = 5 * time.Second

func withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func viewer(c *gin.Context) service.Viewer {
	return service.Viewer{UserID: middleware.UserID(c), IP: c.ClientIP()}
}

// parseID reads a positive integer path parameter, answering 404 otherwise.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

// bind decodes JSON, form or multipart bodies by Content-Type.
func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fieldName(fe)] = fe.Tag()
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

// parseQuery reads the listing query with the filter strategy for kind.
func parseQuery(c *gin.Context, kind models.TargetKind) (filter.Params, bool) {
	s := filter.For(kind)
	if s == nil {
		respondError(c, service.ErrInvalidTarget)
		return filter.Params{}, false
	}
	p, err := filter.Parse(s, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return filter.Params{}, false
	}
	return p, true
}

// respondError maps service and filter errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *filter.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "fields": verr.Fields})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidVote),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, service.ErrInvalidParent),
		errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, media.ErrTooLarge),
		errors.Is(err, media.ErrUnsupportedType):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// wantsJSON is true for API-style clients; browsers posting forms get
// redirected instead.
func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return c.ContentType() == gin.MIMEJSON
}

// redirectBack sends browsers back where they came from, like a form post
// would, and everyone else the payload.
func redirectBack(c *gin.Context, status int, payload any) {
	if wantsJSON(c) {
		c.JSON(status, payload)
		return
	}
	c.Redirect(http.StatusFound, safeReferer(c))
}

// safeReferer only follows same-host referers.
func safeReferer(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != c.Request.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
