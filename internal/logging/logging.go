package logging

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var levelRank = map[string]int32{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

var (
	minLevel atomic.Int32
	service  atomic.Value
)

// init ensures logs go to stdout and uses UTC timestamps.
func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
	minLevel.Store(levelRank["info"])
	service.Store("")
}

// Configure sets the service name stamped on every line and the minimum level written.
// Unknown levels fall back to info.
func Configure(serviceName, level string) {
	service.Store(serviceName)
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank["info"]
	}
	minLevel.Store(rank)
}

// Enabled reports whether lines at level are written.
func Enabled(level string) bool {
	rank, ok := levelRank[level]
	if !ok {
		return true
	}
	return rank >= minLevel.Load()
}

// LogKV logs a structured JSON line with a level, message, and arbitrary fields.
func LogKV(level, msg string, fields map[string]interface{}) {
	if !Enabled(level) {
		return
	}
	entry := map[string]interface{}{
		"level": level,
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"msg":   msg,
	}
	if name, _ := service.Load().(string); name != "" {
		entry["service"] = name
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	log.Println(string(b))
}

// JSONLogger returns a Gin middleware that logs requests as single-line JSON.
func JSONLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		level := "info"
		switch {
		case status >= http.StatusInternalServerError:
			level = "error"
		case status >= http.StatusBadRequest || len(c.Errors) > 0:
			level = "warn"
		}

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"query":      query,
			"status":     status,
			"latency_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
			"bytes_in":   c.Request.ContentLength,
			"bytes_out":  c.Writer.Size(),
		}
		if id := c.GetString(RequestIDKey); id != "" {
			fields["request_id"] = id
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}

		LogKV(level, "request", fields)
	}
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
