package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/metrics"
	"github.com/mamadbah2/herd/internal/server/handlers"
)

const (
	requestIDHeader = "X-Request-ID"
	langCookie      = "lang"
	langCookieAge   = 365 * 24 * 60 * 60
)

// requestIDMiddleware reuses the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(handlers.RequestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("request completed", fields...)
	}
}

// metricsMiddleware records requests by route pattern so ids do not explode
// the label space.
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// languageMiddleware picks the UI language: ?lang= (remembered in a
// cookie), then the cookie, then Accept-Language.
func languageMiddleware(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, ok := tr.Parse(c.Query("lang"))
		if ok {
			c.SetCookie(langCookie, string(lang), langCookieAge, "/", "", false, true)
		} else if raw, err := c.Cookie(langCookie); err == nil {
			lang, ok = tr.Parse(raw)
		}
		if !ok {
			lang = tr.Match(c.GetHeader("Accept-Language"))
		}
		c.Set(handlers.LangKey, lang)
		c.Next()
	}
}
