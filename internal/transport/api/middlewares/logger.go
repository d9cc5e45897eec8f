package middlewares

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	maskedValue     = "***"
	maxLoggedBodyKB = 64
)

var sensitiveFields = map[string]struct{}{
	"password":     {},
	"cardpassword": {},
	"token":        {},
	"secret":       {},
}

// Logger writes one access log entry per request. JSON request bodies are logged with sensitive fields
// masked. Client errors are logged at warn level, server errors at error level with the private errors
// attached to the context.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		body := readBody(c)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields["query"] = q
		}
		if body != nil {
			fields["body"] = body
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
		}

		entry := l.WithFields(fields)
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

// readBody returns the masked JSON body and puts the raw bytes back for the handler.
func readBody(c *gin.Context) any {
	if c.Request.Body == nil || !strings.Contains(c.ContentType(), "json") {
		return nil
	}
	if c.Request.ContentLength > maxLoggedBodyKB<<10 {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBodyKB<<10))
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), c.Request.Body))

	var payload any
	if err = json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return MaskSensitive(payload)
}

// MaskSensitive replaces the values of sensitive keys in a decoded JSON document, at any depth.
func MaskSensitive(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			if _, ok := sensitiveFields[strings.ToLower(k)]; ok {
				val[k] = maskedValue
				continue
			}
			val[k] = MaskSensitive(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = MaskSensitive(inner)
		}
		return val
	default:
		return v
	}
}
